package utils

import "time"

// FormatTimestamp renders t as UTC RFC3339, the format used in API payloads
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
