package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseShortDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"90s", 90 * time.Second},
		{"10m", 10 * time.Minute},
		{"1h", time.Hour},
		{"2d", 48 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseShortDuration(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseShortDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "m", "10", "10x", "-5m", "0m", "h1", "ten minutes"} {
		if _, err := ParseShortDuration(in); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("%q: expected ErrInvalidDuration, got %v", in, err)
		}
	}
}
