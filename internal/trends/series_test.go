package trends

import (
	"testing"
	"time"

	"github.com/saadjs/kcal-trends/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeriesSingleDoesNotZeroFill(t *testing.T) {
	d := day(2024, time.August, 8)

	empty := BuildSeries(nil, span(d, d), RangeToday, GroupingSingle, CombineAvg)
	assert.Empty(t, empty.Days)
	assert.Equal(t, 0, empty.Summary.Buckets)

	got := BuildSeries([]model.LogEntry{kcal(d, 1700)}, span(d, d), RangeToday, GroupingSingle, CombineAvg)
	require.Len(t, got.Days, 1)
	assert.Equal(t, 1700.0, got.Summary.Totals.Calories)
}

func TestBuildSeriesWeekModeShowsWholeWeek(t *testing.T) {
	// Monday to Wednesday of the current week.
	rng := span(day(2024, time.January, 1), day(2024, time.January, 3))
	entries := []model.LogEntry{kcal(day(2024, time.January, 2), 2100)}

	s := BuildSeries(entries, rng, RangeWeek, SelectGrouping(rng, RangeWeek, ""), CombineAvg)

	assert.Equal(t, GroupingDay, s.Grouping)
	require.Len(t, s.Days, 7)
	assert.Equal(t, "Tue", s.Days[1].DayLabel)
	assert.Equal(t, 2100.0, s.Days[1].Calories)
	assert.Empty(t, s.Weeks)
	assert.Empty(t, s.Months)
}

func TestBuildSeriesWeekModeOnMonday(t *testing.T) {
	monday := day(2024, time.January, 8)
	rng := span(monday, monday)

	s := BuildSeries(nil, rng, RangeWeek, SelectGrouping(rng, RangeWeek, ""), CombineAvg)

	assert.Equal(t, GroupingDay, s.Grouping)
	require.Len(t, s.Days, 7)
	assert.Equal(t, day(2024, time.January, 14), s.Days[6].Date)
}

func TestBuildSeriesMonthModeLabelsDays(t *testing.T) {
	rng := span(day(2025, time.July, 1), day(2025, time.July, 10))

	s := BuildSeries(nil, rng, RangeMonth, GroupingDay, CombineAvg)

	require.Len(t, s.Days, 10)
	assert.Equal(t, "Jul 10", s.Days[9].DayLabel)
}

func TestBuildSeriesWeeksAndMonths(t *testing.T) {
	rng := span(day(2024, time.January, 1), day(2024, time.January, 21))
	entries := []model.LogEntry{
		kcal(day(2024, time.January, 1), 700),
		kcal(day(2024, time.January, 15), 1400),
	}

	weeks := BuildSeries(entries, rng, RangeCustom, GroupingWeek, CombineSum)
	require.Len(t, weeks.Weeks, 3)
	assert.Equal(t, 700.0, weeks.Weeks[0].Calories)
	assert.Equal(t, 0.0, weeks.Weeks[1].Calories)
	assert.Equal(t, 3, weeks.Summary.Buckets)
	assert.Equal(t, 2100.0, weeks.Summary.Totals.Calories)

	avgWeeks := BuildSeries(entries, rng, RangeCustom, GroupingWeek, CombineAvg)
	assert.Equal(t, 100.0, avgWeeks.Weeks[0].Calories)

	months := BuildSeries(entries, rng, RangeCustom, GroupingMonth, CombineSum)
	require.Len(t, months.Months, 1)
	assert.Equal(t, 2100.0, months.Months[0].Calories)
	assert.Equal(t, rng, months.Months[0].MonthRange)
}
