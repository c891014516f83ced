package utils

import (
	"time"
)

// kaitenTimeFormats are the timestamp layouts observed in Kaiten payloads.
var kaitenTimeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000000-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTimestamp converts a Kaiten timestamp string to the canonical
// ISO-8601 representation with millisecond precision in UTC, e.g.
// "2023-01-01T12:00:00.000Z". An empty or unparsable input returns ""
// rather than an error; the target API treats a missing value as absent.
func NormalizeTimestamp(value string) string {
	if value == "" {
		return ""
	}
	for _, f := range kaitenTimeFormats {
		if t, err := time.Parse(f, value); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05.000Z")
		}
	}
	return ""
}

// OrPlaceholder returns the value unchanged unless it is empty, in which
// case a single space is returned. Planka rejects empty strings for some
// required text fields.
func OrPlaceholder(value string) string {
	if value == "" {
		return " "
	}
	return value
}
