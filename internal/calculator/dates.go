package calculator

import (
	"time"

	"picktracker/internal/util"
)

type Granularity string

const (
	Granularity_Daily   Granularity = "daily"
	Granularity_Weekly  Granularity = "weekly"
	Granularity_Monthly Granularity = "monthly"
)

// MonthlyTargetDates steps one month at a time from start through end.
// The start's day of month is kept where the month allows it, so Jan 31
// is followed by Feb 29 (or 28) and then Mar 31. A start after end is
// clamped to end, so the result is always ascending and never empty.
func MonthlyTargetDates(start, end time.Time) []time.Time {
	start, end = clampWindow(start, end)
	out := []time.Time{}
	for i := 0; ; i++ {
		current := addMonthsClamped(start, i)
		if current.After(end) {
			break
		}
		out = append(out, current)
	}
	return out
}

// TargetDates generates dates in [start, end] at the given granularity
func TargetDates(start, end time.Time, granularity Granularity) []time.Time {
	if granularity == Granularity_Monthly {
		return MonthlyTargetDates(start, end)
	}

	step := 1
	if granularity == Granularity_Weekly {
		step = 7
	}
	start, end = clampWindow(start, end)
	out := []time.Time{}
	for current := start; !current.After(end); current = current.AddDate(0, 0, step) {
		out = append(out, current)
	}
	return out
}

func clampWindow(start, end time.Time) (time.Time, time.Time) {
	start, end = util.DateOnly(start), util.DateOnly(end)
	if start.After(end) {
		start = end
	}
	return start, end
}

func addMonthsClamped(anchor time.Time, months int) time.Time {
	firstOfMonth := time.Date(anchor.Year(), anchor.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfMonth.AddDate(0, 1, -1).Day()
	day := anchor.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month(), day, 0, 0, 0, 0, time.UTC)
}
