// Package clock converts "HH:MM" wall-clock strings into worked-hour durations.
package clock

import (
	"strings"
	"time"
)

const (
	layoutMinutes = "15:04"
	layoutSeconds = "15:04:05"
)

// Parse returns the minutes since midnight of a 24-hour "HH:MM" string.
// "HH:MM:SS" is accepted as well, seconds are dropped.
func Parse(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	t, err := time.Parse(layoutMinutes, value)
	if err != nil {
		t, err = time.Parse(layoutSeconds, value)
		if err != nil {
			return 0, false
		}
	}
	return t.Hour()*60 + t.Minute(), true
}

// Valid reports whether value is a parseable wall-clock time.
func Valid(value string) bool {
	_, ok := Parse(value)
	return ok
}

// HalfDayHours returns end-start in hours. Absent or malformed bounds give 0,
// an end before the start is clamped to 0.
func HalfDayHours(start, end *string) float64 {
	if start == nil || end == nil {
		return 0
	}
	s, ok := Parse(*start)
	if !ok {
		return 0
	}
	e, ok := Parse(*end)
	if !ok {
		return 0
	}
	if e <= s {
		return 0
	}
	return float64(e-s) / 60
}

// DayHours sums the morning and afternoon half-days.
func DayHours(morningStart, morningEnd, afternoonStart, afternoonEnd *string) float64 {
	return HalfDayHours(morningStart, morningEnd) + HalfDayHours(afternoonStart, afternoonEnd)
}

// FormatRange renders a half-day as "08:30-12:00" for display.
func FormatRange(start, end *string) string {
	if start == nil || *start == "" {
		return ""
	}
	if end == nil {
		return *start + "-"
	}
	return *start + "-" + *end
}

// Normalize trims a user-supplied time and maps blank or "None" to nil.
func Normalize(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" || strings.EqualFold(v, "none") {
		return nil
	}
	if len(v) == len(layoutSeconds) {
		if _, err := time.Parse(layoutSeconds, v); err == nil {
			v = v[:len(layoutMinutes)]
		}
	}
	return &v
}
