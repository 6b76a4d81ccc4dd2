package trends

import (
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/model"
)

// Series is a chart-ready view of a date range. Exactly one of Days, Weeks
// and Months is populated, chosen by Grouping.
type Series struct {
	Grouping  GroupingMode       `json:"grouping"`
	RangeMode RangeMode          `json:"range_mode"`
	Range     calendar.DateRange `json:"range"`
	Days      []DailyBucket      `json:"days,omitempty"`
	Weeks     []WeekBucket       `json:"weeks,omitempty"`
	Months    []MonthBucket      `json:"months,omitempty"`
	Summary   Summary            `json:"summary"`
}

// BuildSeries buckets entries for rng at the given grouping. A single-day
// series holds only the entry that exists for that day, without a zero
// placeholder.
func BuildSeries(entries []model.LogEntry, rng calendar.DateRange, mode RangeMode, grouping GroupingMode, combine Combine) Series {
	if mode == RangeWeek && grouping == GroupingSingle {
		// The current-week view lists Monday to Sunday even on a Monday.
		grouping = GroupingDay
	}
	s := Series{Grouping: grouping, RangeMode: mode, Range: rng}

	switch grouping {
	case GroupingSingle:
		s.Days = make([]DailyBucket, 0, 1)
		for _, e := range entries {
			if rng.Contains(e.Date) {
				s.Days = []DailyBucket{{Date: e.Date, Macros: macrosOf(e)}}
			}
		}
		s.Summary = Summarize(s.Days)
	case GroupingWeek:
		s.Weeks = GroupByWeek(FillDaily(entries, rng), combine)
		s.Summary = Summarize(s.Weeks)
	case GroupingMonth:
		s.Months = GroupByMonth(FillDaily(entries, rng))
		s.Summary = Summarize(s.Months)
	default:
		s.Grouping = GroupingDay
		switch mode {
		case RangeWeek:
			s.Days = FillWeekDays(entries, calendar.ISOWeek(rng.Start))
		case RangeMonth:
			s.Days = FillMonthDays(entries, rng)
		default:
			s.Days = FillDaily(entries, rng)
		}
		s.Summary = Summarize(s.Days)
	}
	return s
}
