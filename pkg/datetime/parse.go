// Package datetime provides day-granular date utility functions.
//
// All dates handled here are calendar days: they are normalized to midnight
// UTC so that day arithmetic never depends on a clock time or a zone offset.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/lease-forecast/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout

	day = 24 * time.Hour
)

// MustParseDate parses a date string and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(dateStr string) time.Time {
	t, err := ParseDate(dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD string into a normalized calendar day.
func ParseDate(dateStr string) (time.Time, error) {
	trimmed := strings.TrimSpace(dateStr)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// Date builds a normalized calendar day.
func Date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// Normalize drops the clock time and zone of t, keeping its calendar day.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Format renders a calendar day in DateLayout.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// LastDayOfMonth returns the last calendar day of the given month. Months
// outside 1..12 roll over into adjacent years.
func LastDayOfMonth(year int, month time.Month) time.Time {
	return Date(year, month+1, 0)
}

// AddDays shifts a calendar day by n days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the number of days from start to end, negative when end
// is before start.
func DaysBetween(start, end time.Time) int {
	return int(Normalize(end).Sub(Normalize(start)) / day)
}

// DaysInclusive returns the number of calendar days in [start, end], or zero
// if end is before start.
func DaysInclusive(start, end time.Time) int {
	n := DaysBetween(start, end) + 1
	if n < 0 {
		return 0
	}
	return n
}

// OverlapDays returns the number of days the interval [start, end] shares
// with [windowStart, windowEnd]:
// max(0, min(end, windowEnd) - max(start, windowStart) + 1).
func OverlapDays(start, end, windowStart, windowEnd time.Time) int {
	if start.After(windowEnd) || end.Before(windowStart) {
		return 0
	}
	return DaysInclusive(Latest(start, windowStart), Earliest(end, windowEnd))
}

// Earliest returns the earlier of two times.
func Earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// Latest returns the later of two times.
func Latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
