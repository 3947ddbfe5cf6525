// Package schedule decides when a pipeline run is due. Weekdays run every
// few hours on the hour; weekends once in the evening, since forex markets
// are closed and only the daily wrap-up matters.
package schedule

import "time"

type Gate struct {
	weekdayHours map[int]bool
	weekendHour  int
	minGap       time.Duration
}

func New(weekdayHours []int, weekendHour int) *Gate {
	hours := make(map[int]bool, len(weekdayHours))
	for _, h := range weekdayHours {
		hours[h] = true
	}
	return &Gate{weekdayHours: hours, weekendHour: weekendHour, minGap: time.Hour}
}

// ShouldRun reports whether a run is due at now. Runs only trigger on the
// hour, and never within an hour of the previous run. lastRun may be the
// zero time when no run has happened yet.
func (g *Gate) ShouldRun(now, lastRun time.Time) bool {
	if now.Minute() != 0 {
		return false
	}
	if !lastRun.IsZero() && now.Sub(lastRun) < g.minGap {
		return false
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return now.Hour() == g.weekendHour
	}
	return g.weekdayHours[now.Hour()]
}
