package utils

import "time"

// ParseDate parses a calendar day in "2006-01-02" form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ParseTimestamp accepts an RFC 3339 timestamp, falling back to a bare date.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return ParseDate(s)
}
