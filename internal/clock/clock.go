// Package clock supplies the current instant in the fixed civil timezone
// the ledger is kept in (UTC-3 by default, no DST).
package clock

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date format used throughout the ledger.
	DateLayout = "2006-01-02"
	// TimeLayout is the time-of-day format used throughout the ledger.
	TimeLayout = "15:04:05"

	// DefaultOffsetHours is the ledger's civil timezone offset from UTC.
	DefaultOffsetHours = -3
)

// Stamp is an instant decomposed into the ledger's calendar date and
// time-of-day strings.
type Stamp struct {
	Date string
	Time string
}

// Source yields stamps in a fixed civil timezone.
type Source struct {
	now func() time.Time
	loc *time.Location
}

// New returns a Source using the wall clock and the given UTC offset.
func New(offsetHours int) *Source {
	return NewWithNow(time.Now, offsetHours)
}

// NewWithNow returns a Source with an injectable now function, for tests.
func NewWithNow(now func() time.Time, offsetHours int) *Source {
	return &Source{now: now, loc: Location(offsetHours)}
}

// Location returns a fixed-offset location named like "UTC-3".
func Location(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// Now returns the current instant in the source's timezone.
func (s *Source) Now() time.Time {
	return s.now().In(s.loc)
}

// Stamp returns the current instant decomposed into date and time-of-day.
func (s *Source) Stamp() Stamp {
	t := s.Now()
	return Stamp{Date: t.Format(DateLayout), Time: t.Format(TimeLayout)}
}
