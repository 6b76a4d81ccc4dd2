package trends

import (
	"fmt"
	"strings"

	"github.com/saadjs/kcal-trends/internal/calendar"
)

type GroupingMode string

const (
	GroupingSingle GroupingMode = "single"
	GroupingDay    GroupingMode = "day"
	GroupingWeek   GroupingMode = "week"
	GroupingMonth  GroupingMode = "month"
)

// RangeMode is the window the user picked the range from.
type RangeMode string

const (
	RangeToday     RangeMode = "today"
	RangeWeek      RangeMode = "week"
	RangeMonth     RangeMode = "month"
	RangeRolling30 RangeMode = "rolling-30-day"
	RangeCustom    RangeMode = "custom"
)

// Ranges of up to this many days are always shown per day.
const maxDayGroupedDays = 14

// SelectGrouping picks the bucket granularity for rng. The day-count table
// applies unless the user chose a coarse window (month, rolling 30 days) or a
// custom range longer than two weeks, in which case a valid override wins.
// A one-day range is always single.
func SelectGrouping(rng calendar.DateRange, mode RangeMode, override GroupingMode) GroupingMode {
	days := rng.Days()
	grouping := defaultGrouping(days)
	if grouping == GroupingSingle {
		return grouping
	}
	if !overridable(override) {
		return grouping
	}
	switch mode {
	case RangeMonth, RangeRolling30:
		return override
	case RangeCustom:
		if days > maxDayGroupedDays {
			return override
		}
	}
	return grouping
}

func defaultGrouping(days int) GroupingMode {
	switch {
	case days <= 1:
		return GroupingSingle
	case days <= maxDayGroupedDays:
		return GroupingDay
	case days <= 60:
		return GroupingWeek
	default:
		return GroupingMonth
	}
}

func overridable(g GroupingMode) bool {
	return g == GroupingDay || g == GroupingWeek || g == GroupingMonth
}

// AllowsOverride reports whether a user grouping choice is honoured for the
// given window, so callers can decide whether to offer one.
func AllowsOverride(rng calendar.DateRange, mode RangeMode) bool {
	if rng.Days() <= 1 {
		return false
	}
	switch mode {
	case RangeMonth, RangeRolling30:
		return true
	case RangeCustom:
		return rng.Days() > maxDayGroupedDays
	}
	return false
}

func ParseGroupingMode(value string) (GroupingMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return "", nil
	case "day":
		return GroupingDay, nil
	case "week":
		return GroupingWeek, nil
	case "month":
		return GroupingMonth, nil
	default:
		return "", fmt.Errorf("invalid grouping %q (use auto|day|week|month)", value)
	}
}

func ParseRangeMode(value string) (RangeMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today":
		return RangeToday, nil
	case "week":
		return RangeWeek, nil
	case "month":
		return RangeMonth, nil
	case "30d", "rolling-30-day":
		return RangeRolling30, nil
	case "", "custom":
		return RangeCustom, nil
	default:
		return "", fmt.Errorf("invalid range %q (use today|week|month|30d|custom)", value)
	}
}
