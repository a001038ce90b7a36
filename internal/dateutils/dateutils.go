// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	// LayoutTimestamp is the wire format message readers emit and the store persists.
	LayoutTimestamp = "2006-01-02 15:04:05"
	// LayoutISO is the date-only form used in flags and daily aggregates.
	LayoutISO = "2006-01-02"
)

// CommonFormats is the list of formats to try when parsing timestamps
var CommonFormats = []string{
	LayoutTimestamp,
	LayoutISO,
	time.RFC3339,
}

// ParseTimestamp attempts to parse a timestamp string using the common formats
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", s)
}

// FormatTimestamp renders a time in the wire timestamp format
func FormatTimestamp(t time.Time) string {
	return t.Format(LayoutTimestamp)
}

// FromEpochMillis converts epoch milliseconds to the wire timestamp format
func FromEpochMillis(millis int64) string {
	return FormatTimestamp(time.UnixMilli(millis))
}

// DayKey renders the date-only form used to bucket daily spending
func DayKey(t time.Time) string {
	return t.Format(LayoutISO)
}
