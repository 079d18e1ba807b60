package due

import (
	"strconv"
	"time"
)

// Day is the length of a calendar day for labelling purposes.
const Day = 24 * time.Hour

// FormatTimeLeft describes how far due is from now, e.g. "30 minutes left",
// "5 hours left (today)" or "Overdue by 3 days". Counts are rounded half up
// and the minute count never drops below 1.
func FormatTimeLeft(due, now time.Time) string {
	diff := due.Sub(now)
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	var (
		n     int
		unit  string
		today bool
	)
	switch {
	case abs < time.Hour:
		n = max(1, roundDiv(abs, time.Minute))
		unit = "minute"
	case abs < Day:
		n = roundDiv(abs, time.Hour)
		unit = "hour"
		today = true
	default:
		n = roundDiv(abs, Day)
		unit = "day"
	}

	if diff < 0 {
		return "Overdue by " + plural(n, unit)
	}
	label := plural(n, unit) + " left"
	if today {
		label += " (today)"
	}
	return label
}

// IsOverdue reports whether a task with the given due time has passed it.
// Completed tasks are never overdue.
func IsOverdue(completed bool, due, now time.Time) bool {
	return !completed && due.Before(now)
}

// FormatDMY formats t as DD-MM-YYYY.
func FormatDMY(t time.Time) string {
	return t.Format("02-01-2006")
}

func roundDiv(d, unit time.Duration) int {
	return int((d + unit/2) / unit)
}

func plural(n int, word string) string {
	s := strconv.Itoa(n) + " " + word
	if n != 1 {
		s += "s"
	}
	return s
}
