package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for civil dates throughout the system.
const DateLayout = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD civil date into midnight UTC.
// Anything else is an error; time-of-day components never reach the stats
// core, which is what keeps all interval math off-by-one free.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DateOf strips the time-of-day component, returning midnight UTC of the
// same calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a civil date back to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
