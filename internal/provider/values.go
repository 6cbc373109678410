package provider

import (
	"strconv"
	"strings"
)

// Helpers for turning loosely typed API payloads into CoreMetadata fields.

// StringValue dereferences an optional API string, trimmed. Nil yields "".
func StringValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// FirstNonEmpty returns the first value that is not blank, trimmed.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}

// FirstYear returns the year of a "2006-01-02" style date, or "" when the
// date is too short to carry one.
func FirstYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

// NumericID parses a numeric provider ID. Blank or malformed IDs yield 0.
func NumericID(id string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
