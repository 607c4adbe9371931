// Package timewindow parses catalog opening-hour strings and does
// minute-of-day arithmetic. All functions are pure and fail closed to
// documented defaults so a single malformed catalog record can never
// abort a whole itinerary.
package timewindow

import (
	"fmt"
	"strconv"
	"strings"
)

// The default window applied whenever an opening-hours string cannot be
// parsed.
const (
	DefaultOpen  = "09:00"
	DefaultClose = "18:00"
)

// DefaultOpenMinutes is DefaultOpen as minutes since midnight, returned
// by ToMinutes on any parse failure.
const DefaultOpenMinutes = 540

// separator is the en dash the catalog uses between open and close
// times, e.g. "10:00–17:30". A plain hyphen does not match.
const separator = "–"

// ParseOpeningHours splits a raw opening-hours string into open and
// close times. Empty input, a missing separator, or a split that does
// not yield exactly two parts all resolve to the 09:00–18:00 default.
func ParseOpeningHours(raw string) (open, close string) {
	if raw == "" {
		return DefaultOpen, DefaultClose
	}
	parts := strings.Split(raw, separator)
	if len(parts) != 2 {
		return DefaultOpen, DefaultClose
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// ToMinutes converts an "HH:MM" string to minutes since midnight. Any
// malformed input yields DefaultOpenMinutes rather than an error.
func ToMinutes(clock string) int {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return DefaultOpenMinutes
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return DefaultOpenMinutes
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return DefaultOpenMinutes
	}
	return hours*60 + mins
}

// ToClock formats minutes since midnight as zero-padded "HH:MM". There
// is no day rollover: values of 1440 and above render an hour of 24 or
// more, so callers must keep inputs inside a single day.
func ToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
