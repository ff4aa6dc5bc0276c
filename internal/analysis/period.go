package analysis

import (
	"fmt"
	"time"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"

	trailingWindowDays = 30
)

// CurrentMonth returns the "YYYY-MM" month containing now.
func CurrentMonth(now time.Time) string {
	return now.Format(monthLayout)
}

// ParseMonth parses a "YYYY-MM" string into the first instant of that month in loc.
func ParseMonth(month string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(monthLayout, month, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	return t, nil
}

// MonthBounds returns the first and last instant of month in loc.
func MonthBounds(month string, loc *time.Location) (start, end time.Time, err error) {
	start, err = ParseMonth(month, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
}

// MonthEnd returns the last instant of month in loc. Passing it to Analyze
// evaluates that month as if it were the current one.
func MonthEnd(month string, loc *time.Location) (time.Time, error) {
	_, end, err := MonthBounds(month, loc)
	return end, err
}

// Last30Days returns the trailing window [now - 30 calendar days, now].
func Last30Days(now time.Time) (start, end time.Time) {
	return now.AddDate(0, 0, -trailingWindowDays), now
}

func monthBoundsOf(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// calendarDay re-anchors a stored date at midnight in loc, keeping its
// year, month and day regardless of the location it was decoded in.
func calendarDay(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// FormatDate renders a calendar date as "YYYY-MM-DD".
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
