// Package timeutil provides timezone-aware calendar arithmetic for the
// hydration engine. All day and week boundaries are computed in the user's
// local timezone, injected as a *time.Location.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StartOfDay returns the start of the day (00:00:00) in the given location.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in the given location.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, loc)
}

// StartOfWeek returns the start of the week (Monday 00:00:00) in the given location.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return StartOfDay(local.AddDate(0, 0, -(weekday-1)), loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}

// DayKey formats a time as a YYYY-MM-DD key in loc. Intake entries are
// grouped into calendar days by this key.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// DaysBetween returns the number of whole calendar days from a to b in loc.
// Negative if b is before a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	start := StartOfDay(a, loc)
	end := StartOfDay(b, loc)
	return int(end.Sub(start).Hours() / 24)
}

// WeekWindow returns the 7 day-start times of the calendar week that
// begins at weekStart, normalized to day boundaries in loc.
func WeekWindow(weekStart time.Time, loc *time.Location) [7]time.Time {
	var days [7]time.Time
	start := StartOfDay(weekStart, loc)
	for i := 0; i < 7; i++ {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// TimeOfDay is a wall-clock time within a day (hour and minute).
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM". The fallback is returned for malformed or
// out-of-range input.
func ParseTimeOfDay(s string, fallback TimeOfDay) TimeOfDay {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return fallback
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return fallback
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return fallback
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fallback
	}
	return TimeOfDay{Hour: hour, Minute: minute}
}

// String formats the time of day as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day onto the calendar day of t in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Minutes returns the time of day as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}
