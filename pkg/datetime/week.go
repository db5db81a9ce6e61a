// Package datetime provides the calendar helpers used for reporting windows.
package datetime

import (
	"time"
)

// DateLayout is the calendar date format used in list views.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight UTC of the day t falls on in UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Sunday midnight UTC that opens the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// InRange reports whether t lies in the half-open window [from, to).
func InRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
