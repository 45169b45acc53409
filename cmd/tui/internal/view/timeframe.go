package view

import (
	"time"
)

// Timeframe is a predefined date range for the records filter.
type Timeframe int

const (
	TimeframeAll Timeframe = iota
	TimeframeThisWeek
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	timeframeCount
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeAll:
		return "All Time"
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeLastWeek:
		return "Last Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	}

	return "Unknown"
}

func (t Timeframe) Next() Timeframe {
	return (t + 1) % timeframeCount
}

// Range returns the inclusive YYYY-MM-DD bounds of t relative to now. Both are
// empty for TimeframeAll. Weeks start on Monday.
func (t Timeframe) Range(now time.Time) (string, string) {
	var start, end time.Time

	switch t {
	case TimeframeThisWeek:
		start = now.AddDate(0, 0, -weekdayOffset(now))
		end = now
	case TimeframeLastWeek:
		end = now.AddDate(0, 0, -weekdayOffset(now)-1)
		start = end.AddDate(0, 0, -6)
	case TimeframeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now
	case TimeframeLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	default:
		return "", ""
	}

	return start.Format(time.DateOnly), end.Format(time.DateOnly)
}

// weekdayOffset is the number of days since the last Monday.
func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
