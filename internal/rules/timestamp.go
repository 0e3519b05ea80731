package rules

import "time"

// isoLayouts covers the timestamp shapes the original tooling accepted:
// date-only, "T" or space separator, optional fractional seconds, and an
// optional "Z" or numeric offset with or without a colon.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidTimestamp reports whether s parses as an ISO-8601 timestamp.
func ValidTimestamp(s string) bool {
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
