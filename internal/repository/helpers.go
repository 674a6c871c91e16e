package repository

import (
	"database/sql"
	"time"
)

// Timestamps are stored as RFC 3339 text in UTC.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timeOrNull stores the zero time as NULL.
func timeOrNull(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

// scanTime reads a nullable timestamp; NULL, empty and malformed values
// all come back as the zero time.
func scanTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// sqlBool maps a bool onto SQLite's 0/1 integers.
func sqlBool(b bool) int {
	if b {
		return 1
	}
	return 0
}
