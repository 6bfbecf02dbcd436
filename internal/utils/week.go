package utils

import (
	"time"
)

const (
	DisplayDateLayout = "January 2, 2006"
	FileDateLayout    = "2006-01-02"
	ScheduleLayout    = "Monday, January 2, 2006"
)

// WeekRange returns the Monday 00:00 to Sunday 23:59:59.999 window containing now, in loc.
func WeekRange(now time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	offset := (int(local.Weekday()) + 6) % 7 // days since Monday
	start = time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// NextSunday returns the next Sunday after now; on a Sunday that is a week ahead.
func NextSunday(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	days := (7 - int(local.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return time.Date(local.Year(), local.Month(), local.Day()+days, 0, 0, 0, 0, loc)
}
