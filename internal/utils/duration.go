package utils

import (
	"errors"
	"strconv"
	"time"
)

var ErrInvalidDuration = errors.New("invalid duration")

// ParseShortDuration parses the human short-unit syntax used by mute
// durations: an integer followed by s, m, h, d or w (e.g. "90s", "10m",
// "1h", "2d"). Anything else fails with ErrInvalidDuration.
func ParseShortDuration(value string) (time.Duration, error) {
	if len(value) < 2 {
		return 0, ErrInvalidDuration
	}

	unit := value[len(value)-1]
	amount, err := strconv.Atoi(value[:len(value)-1])
	if err != nil || amount <= 0 {
		return 0, ErrInvalidDuration
	}

	switch unit {
	case 's':
		return time.Duration(amount) * time.Second, nil
	case 'm':
		return time.Duration(amount) * time.Minute, nil
	case 'h':
		return time.Duration(amount) * time.Hour, nil
	case 'd':
		return time.Duration(amount) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(amount) * 7 * 24 * time.Hour, nil
	default:
		return 0, ErrInvalidDuration
	}
}
