package afk

import (
	"sync"
	"time"
)

const defaultReason = "AFK"

type Entry struct {
	Reason string
	Since  time.Time
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Tracker holds per-user away status for the process lifetime. Status is
// never persisted and never expires on its own; it clears on the user's
// next message.
type Tracker struct {
	mu      sync.Mutex
	clock   Clock
	entries map[string]Entry
}

func NewTracker() *Tracker {
	return &Tracker{
		clock:   realClock{},
		entries: make(map[string]Entry),
	}
}

func (t *Tracker) WithClock(clock Clock) {
	t.clock = clock
}

func (t *Tracker) Set(userID, reason string) Entry {
	if reason == "" {
		reason = defaultReason
	}
	entry := Entry{Reason: reason, Since: t.clock.Now()}
	t.mu.Lock()
	t.entries[userID] = entry
	t.mu.Unlock()
	return entry
}

// Get is the passive read used for mention notices; it never mutates state.
func (t *Tracker) Get(userID string) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[userID]
	return entry, ok
}

// Clear removes the entry and returns it, reporting whether one existed.
func (t *Tracker) Clear(userID string) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[userID]
	if ok {
		delete(t.entries, userID)
	}
	return entry, ok
}

// Minutes returns the elapsed whole minutes since the entry was set.
func (t *Tracker) Minutes(entry Entry) int {
	elapsed := t.clock.Now().Sub(entry.Since)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}
