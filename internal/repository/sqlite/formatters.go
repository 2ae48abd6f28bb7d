package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 string in UTC with
// sub-second precision kept
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses a time string written by FormatTimeForDB. Plain
// RFC3339 values are accepted as well.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
