package dateutil

import "time"

// Day truncates a timestamp to its calendar date in UTC. Streak and retention
// comparisons always work on these truncated values.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// IsYesterday reports whether a is the calendar day right before b.
func IsYesterday(a, b time.Time) bool {
	return Day(a).AddDate(0, 0, 1).Equal(Day(b))
}

// LastNDays returns the first instant of the day n-1 days before t, so the
// returned value together with t spans n calendar days inclusive.
func LastNDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, -(n - 1))
}
