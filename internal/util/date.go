// Package util holds small shared helpers with no domain knowledge.
package util

import "time"

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// EndOfDay normalizes t to the last instant of its calendar day. Range ends
// parsed from YYYY-MM-DD stay inclusive of that whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
