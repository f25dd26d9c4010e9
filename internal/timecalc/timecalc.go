package timecalc

import (
	"fmt"
	"time"

	"github.com/vilhena/ponto/internal/clock"
)

// ParseDate parses a ledger calendar date ("YYYY-MM-DD").
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(clock.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseTimeOfDay parses a ledger time-of-day ("HH:MM:SS") into the
// duration elapsed since midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse(clock.TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// FormatHHMM formats a duration as "HH:MM", truncated (not rounded) to
// whole minutes. Inverted intervals come out with a single leading minus.
func FormatHHMM(d time.Duration) string {
	m := int64(d / time.Minute)
	if m < 0 {
		return fmt.Sprintf("-%02d:%02d", -m/60, -m%60)
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatSignedHHMM formats a duration as "±HH:MM" with an explicit sign,
// truncated to whole minutes. Zero renders as "+00:00".
func FormatSignedHHMM(d time.Duration) string {
	m := int64(d / time.Minute)
	sign := "+"
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
}
