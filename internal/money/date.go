package money

import "time"

// Calendar helpers for due-date stepping. time.AddDate normalizes
// overflowed days (Jan 31 + 1 month = Mar 3), which is wrong for billing
// schedules; these helpers clamp to the end of the target month instead.

// DaysInMonth returns the number of days in the month containing year/month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths advances start by the given number of months and sets the day
// of month to dueDay, clamped to the length of the target month.
func AddMonths(start time.Time, months int, dueDay int) time.Time {
	// Anchor on the first of the month so AddDate never overflows.
	anchor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	target := anchor.AddDate(0, months, 0)

	day := dueDay
	if max := DaysInMonth(target.Year(), target.Month()); day > max {
		day = max
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, start.Location())
}

// AddYears advances start by the given number of years, day clamped the
// same way (Feb 29 in a non-leap year becomes Feb 28).
func AddYears(start time.Time, years int, dueDay int) time.Time {
	anchor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	target := anchor.AddDate(years, 0, 0)

	day := dueDay
	if max := DaysInMonth(target.Year(), target.Month()); day > max {
		day = max
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, start.Location())
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AfterDay reports whether a falls on a later calendar date than b,
// ignoring time of day.
func AfterDay(a, b time.Time) bool {
	return DateOnly(a).After(DateOnly(b))
}
