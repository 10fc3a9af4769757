package utils

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalLayout is fixed width so that string order equals time order.
const CanonicalLayout = "2006-01-02T15:04:05.000000Z"

// Accepted ISO 8601 shapes. Fractional seconds are accepted after the
// seconds field even though the layouts do not spell them out.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO 8601 instant. Values without an offset are
// taken as UTC. The returned time keeps the offset the producer sent.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised ISO 8601 timestamp %q", value)
}

func CanonicalTimestamp(t time.Time) string {
	return t.UTC().Format(CanonicalLayout)
}
