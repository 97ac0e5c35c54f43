package service

import (
	"time"
)

const dateLayout = "2006-01-02"

// dayTZ is the fixed organizational timezone. Calendar days for streaks
// and daily limits are defined on this clock, not the host's locale; both
// features share the same boundary.
var dayTZ = time.FixedZone("UTC+9", 9*60*60)

// currentDate formats the calendar day for an instant
func currentDate(now time.Time) string {
	return now.In(dayTZ).Format(dateLayout)
}

// previousDate returns the calendar day before a formatted date
func previousDate(date string) string {
	t, err := time.ParseInLocation(dateLayout, date, dayTZ)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(dateLayout)
}

// dayStart returns the UTC instant at which the calendar day containing
// now began. Daily transaction counters filter on this boundary.
func dayStart(now time.Time) time.Time {
	d := now.In(dayTZ)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, dayTZ).UTC()
}
