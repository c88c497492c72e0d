package models

import (
	"strings"
	"time"
)

var serverLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
	"2006-01-02",
}

// UserTimeLayout is how timestamps are shown to the user.
const UserTimeLayout = "02-01-2006 15:04:05"

// ParseServerTime parses a datetime field as the server formats it.
func ParseServerTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range serverLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatUserTime re-renders a server datetime for display. Values that do
// not parse are returned as they are.
func FormatUserTime(s string) string {
	t, ok := ParseServerTime(s)
	if !ok {
		return s
	}
	return t.Format(UserTimeLayout)
}
