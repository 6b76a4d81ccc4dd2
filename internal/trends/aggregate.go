package trends

import (
	"fmt"
	"strings"

	"github.com/saadjs/kcal-trends/internal/calendar"
)

// Combine selects how daily values fold into a week.
type Combine string

const (
	CombineSum Combine = "sum"
	CombineAvg Combine = "avg"
)

func ParseCombine(value string) (Combine, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "avg", "average":
		return CombineAvg, nil
	case "sum":
		return CombineSum, nil
	default:
		return "", fmt.Errorf("invalid combine %q (use avg|sum)", value)
	}
}

// GroupByWeek folds daily buckets into ISO weeks, in order of first
// appearance. With CombineAvg each week is divided by the number of days it
// received, not by seven.
func GroupByWeek(days []DailyBucket, combine Combine) []WeekBucket {
	if len(days) == 0 {
		return nil
	}
	acc := map[calendar.WeekKey]*WeekBucket{}
	order := make([]calendar.WeekKey, 0)

	for i := range days {
		key := calendar.ISOWeek(days[i].Date)
		item, ok := acc[key]
		if !ok {
			item = &WeekBucket{WeekKey: key, WeekRange: key.Range()}
			acc[key] = item
			order = append(order, key)
		}
		item.Macros = item.Macros.add(days[i].Macros)
		item.Days++
	}

	out := make([]WeekBucket, 0, len(order))
	for _, k := range order {
		item := *acc[k]
		if combine == CombineAvg {
			item.Macros = item.Macros.div(float64(item.Days))
		}
		out = append(out, item)
	}
	return out
}

// GroupByMonth sums daily buckets per calendar month. Each MonthRange is
// narrowed to the dates present in days.
func GroupByMonth(days []DailyBucket) []MonthBucket {
	if len(days) == 0 {
		return nil
	}
	acc := map[string]*MonthBucket{}
	order := make([]string, 0)

	for i := range days {
		d := days[i].Date
		key := calendar.MonthKey(d)
		item, ok := acc[key]
		if !ok {
			item = &MonthBucket{
				MonthKey:   key,
				MonthRange: calendar.DateRange{Start: d, End: d},
				Label:      calendar.MonthLabel(key),
			}
			acc[key] = item
			order = append(order, key)
		}
		if d.Before(item.MonthRange.Start) {
			item.MonthRange.Start = d
		}
		if d.After(item.MonthRange.End) {
			item.MonthRange.End = d
		}
		item.Macros = item.Macros.add(days[i].Macros)
	}

	out := make([]MonthBucket, 0, len(order))
	for _, k := range order {
		out = append(out, *acc[k])
	}
	return out
}
