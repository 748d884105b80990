package kernel

import "time"

// AddWorkdays returns the calendar date reached by advancing workdays
// business days from start. Saturdays and Sundays are skipped; there is no
// holiday calendar.
//
// Counting starts on the day after start, so the result of a positive
// workdays is never a weekend. For workdays <= 0 the date of start is
// returned unchanged, even when start itself falls on a weekend.
//
// The time of day is dropped: the result is midnight in start's location.
//
// Example:
//
//	friday := time.Date(2024, time.March, 1, 15, 0, 0, 0, time.UTC)
//	kernel.AddWorkdays(friday, 1) // Monday 2024-03-04
func AddWorkdays(start time.Time, workdays int) time.Time {
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	for remaining := workdays; remaining > 0; {
		date = date.AddDate(0, 0, 1)
		if IsWorkday(date) {
			remaining--
		}
	}

	return date
}

// IsWorkday reports whether date is a Monday through Friday.
func IsWorkday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}
