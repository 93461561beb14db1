package core

import "time"

// Weekday numbers use the 1=Sunday convention of the persisted data
// format, not Go's zero-based time.Weekday.
const (
	Sunday    = 1
	Monday    = 2
	Tuesday   = 3
	Wednesday = 4
	Thursday  = 5
	Friday    = 6
	Saturday  = 7
)

// WeekdayNumber returns the 1=Sunday weekday number of t.
func WeekdayNumber(t time.Time) int {
	return int(t.Weekday()) + 1
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same year and month,
// regardless of day.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthStart returns midnight on the first day of the given month.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
}

// DaysInMonth returns the number of days in the given month. Day 0 of
// the following month normalizes to the last day of this one, so leap
// years fall out of the calendar arithmetic without special cases.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// StartOfDay returns midnight of the same calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
