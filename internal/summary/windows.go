package summary

import "time"

// Window boundaries are all computed in one explicit location so that the
// four summaries of a run describe the same calendar.

func StartOfDay(now time.Time, loc *time.Location) time.Time {
	t := now.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfISOWeek returns midnight of the current week's Monday.
func StartOfISOWeek(now time.Time, loc *time.Location) time.Time {
	day := StartOfDay(now, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func StartOfMonth(now time.Time, loc *time.Location) time.Time {
	t := now.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

func StartOfYear(now time.Time, loc *time.Location) time.Time {
	t := now.In(loc)
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
}
