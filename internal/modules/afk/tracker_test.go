package afk

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tracker := NewTracker()
	tracker.WithClock(clock)

	tracker.Set("u1", "brb")
	clock.now = clock.now.Add(3*time.Minute + 30*time.Second)

	entry, ok := tracker.Clear("u1")
	if !ok {
		t.Fatalf("expected entry")
	}
	if entry.Reason != "brb" {
		t.Fatalf("expected reason brb, got %q", entry.Reason)
	}
	if minutes := tracker.Minutes(entry); minutes != 3 {
		t.Fatalf("expected 3 whole minutes, got %d", minutes)
	}

	// Cleared exactly once.
	if _, ok := tracker.Clear("u1"); ok {
		t.Fatalf("second clear should find nothing")
	}
}

func TestDefaultReason(t *testing.T) {
	tracker := NewTracker()
	entry := tracker.Set("u1", "")
	if entry.Reason != "AFK" {
		t.Fatalf("expected default reason, got %q", entry.Reason)
	}
}

func TestGetDoesNotMutate(t *testing.T) {
	tracker := NewTracker()
	tracker.Set("u1", "lunch")

	for i := 0; i < 2; i++ {
		if _, ok := tracker.Get("u1"); !ok {
			t.Fatalf("passive read must not clear status")
		}
	}
}

func TestMinutesNeverNegative(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tracker := NewTracker()
	tracker.WithClock(clock)

	entry := tracker.Set("u1", "x")
	clock.now = clock.now.Add(-time.Minute)
	if minutes := tracker.Minutes(entry); minutes != 0 {
		t.Fatalf("expected 0, got %d", minutes)
	}
}
