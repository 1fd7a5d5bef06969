package helpers

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the persisted timestamp layout: UTC with millisecond precision,
// so lexical order of stored strings equals chronological order.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// DateLayout is the calendar-date form accepted for due dates.
const DateLayout = "2006-01-02"

// FormatISO renders t as an ISO-8601 UTC string.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseISO parses a persisted timestamp. Older rows written with other
// precisions are accepted too.
func ParseISO(s string) (time.Time, error) {
	t, ok := parseTimeAny(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UTC(), nil
}

// ParseDate accepts either an RFC3339 timestamp or a bare YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return ParseISO(s)
}

// NowMillis returns the current time truncated to what ISOLayout can hold,
// so a value survives a round trip through the database unchanged.
func NowMillis() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func parseTimeAny(s string) (time.Time, bool) {
	layouts := []string{
		ISOLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
