package repository

import (
	"fmt"
	"time"
)

// Timestamps are stored as RFC3339Nano text. Exercise and event dates
// are day-granular, so hand-seeded rows may carry a bare date; those
// parse as midnight UTC.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
