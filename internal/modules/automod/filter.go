package automod

// Config mirrors the persisted per-guild automod settings plus the banned
// word set, resolved by the caller before evaluation.
type Config struct {
	Enabled     bool
	AntiLink    bool
	AntiCaps    bool
	AntiSpam    bool
	BannedWords []string
}

// Exemptions are the three independent sets excluded from evaluation.
type Exemptions struct {
	IgnoredChannels map[string]struct{}
	WhitelistUsers  map[string]struct{}
	WhitelistRoles  map[string]struct{}
}

// Message is the minimal view of an inbound message the filter needs.
type Message struct {
	ChannelID   string
	AuthorID    string
	AuthorRoles []string
	Content     string
}

type Decision struct {
	Delete bool
	Rule   string
}

// Rule is a pluggable content evaluator. Adding a detection (such as a real
// anti-spam implementation) means adding a Rule, not touching the filter.
type Rule interface {
	Name() string
	Enabled(cfg Config) bool
	Match(cfg Config, content string) bool
}

type Filter struct {
	rules []Rule
}

// NewFilter builds the default rule chain: link, caps, banned words and the
// reserved spam toggle.
func NewFilter() *Filter {
	return &Filter{rules: []Rule{linkRule{}, capsRule{}, wordRule{}, spamRule{}}}
}

// NewFilterWithRules is the extension point for custom evaluators.
func NewFilterWithRules(rules ...Rule) *Filter {
	return &Filter{rules: rules}
}

// Evaluate applies exemptions first; the first applicable one keeps the
// message. Otherwise each enabled rule is evaluated independently and any
// match deletes.
func (f *Filter) Evaluate(msg Message, cfg Config, exemptions Exemptions) Decision {
	if !cfg.Enabled {
		return Decision{}
	}
	if _, ok := exemptions.IgnoredChannels[msg.ChannelID]; ok {
		return Decision{}
	}
	if _, ok := exemptions.WhitelistUsers[msg.AuthorID]; ok {
		return Decision{}
	}
	for _, roleID := range msg.AuthorRoles {
		if _, ok := exemptions.WhitelistRoles[roleID]; ok {
			return Decision{}
		}
	}

	for _, rule := range f.rules {
		if !rule.Enabled(cfg) {
			continue
		}
		if rule.Match(cfg, msg.Content) {
			return Decision{Delete: true, Rule: rule.Name()}
		}
	}
	return Decision{}
}
