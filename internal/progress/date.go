package progress

import (
	"fmt"
	"time"
)

// dateLayout is the ISO calendar date format used everywhere progress
// dates cross a boundary (storage, display).
const dateLayout = "2006-01-02"

// Date is a calendar day. The zero value means "never".
type Date struct {
	t time.Time
}

// TemporalError indicates a value that cannot be interpreted as a
// calendar date. No attempt is made to guess intent.
type TemporalError struct {
	Value string
	Err   error
}

func (e *TemporalError) Error() string {
	return fmt.Sprintf("not a calendar date: %q", e.Value)
}

func (e *TemporalError) Unwrap() error { return e.Err }

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, &TemporalError{Value: s, Err: err}
	}
	return Date{t: t}, nil
}

// DateOf truncates an instant to its calendar day in the instant's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// NewDate builds a Date from components. Handy in tests.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the date is the "never" value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// After reports whether d is a strictly later day than o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Before reports whether d is a strictly earlier day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// String formats the date as ISO YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}
