package utils

import "time"

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a midnight UTC time
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly strips the clock from a time, keeping the calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekDate calculates the collection date for a given week number.
// Week 1 falls on the start date itself; each following week is 7 days
// later, calendar arithmetic only.
func WeekDate(startDate time.Time, weekNo int) time.Time {
	return startDate.AddDate(0, 0, 7*(weekNo-1))
}

// Today returns today's calendar date
func Today() time.Time {
	return DateOnly(time.Now())
}
