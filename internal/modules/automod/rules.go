package automod

import "strings"

const (
	capsMinLength = 10
	capsFraction  = 0.7
)

type linkRule struct{}

func (linkRule) Name() string            { return "link" }
func (linkRule) Enabled(cfg Config) bool { return cfg.AntiLink }

func (linkRule) Match(_ Config, content string) bool {
	return strings.Contains(content, "http://") || strings.Contains(content, "https://")
}

type capsRule struct{}

func (capsRule) Name() string            { return "caps" }
func (capsRule) Enabled(cfg Config) bool { return cfg.AntiCaps }

// Match flags messages longer than ten characters whose upper-case fraction
// exceeds 0.7. Only A-Z counts as upper case; the denominator is every rune.
func (capsRule) Match(_ Config, content string) bool {
	runes := []rune(content)
	if len(runes) <= capsMinLength {
		return false
	}
	upper := 0
	for _, r := range runes {
		if r >= 'A' && r <= 'Z' {
			upper++
		}
	}
	return float64(upper)/float64(len(runes)) > capsFraction
}

type wordRule struct{}

func (wordRule) Name() string            { return "word" }
func (wordRule) Enabled(cfg Config) bool { return cfg.Enabled }

func (wordRule) Match(cfg Config, content string) bool {
	if len(cfg.BannedWords) == 0 {
		return false
	}
	folded := strings.ToLower(content)
	for _, word := range cfg.BannedWords {
		if word == "" {
			continue
		}
		if strings.Contains(folded, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

type spamRule struct{}

func (spamRule) Name() string            { return "spam" }
func (spamRule) Enabled(cfg Config) bool { return cfg.AntiSpam }

// Match never fires: the anti-spam toggle is reserved until a rate-tracking
// design exists. Keeping it as a Rule keeps the toggle independently testable.
func (spamRule) Match(_ Config, _ string) bool { return false }
