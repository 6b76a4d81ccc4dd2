package trends

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByWeekUsesISOYear(t *testing.T) {
	rng := span(day(2024, time.December, 29), day(2025, time.January, 1))
	entries := []model.LogEntry{
		kcal(day(2024, time.December, 29), 100),
		kcal(day(2024, time.December, 30), 300),
		kcal(day(2025, time.January, 1), 600),
	}

	got := GroupByWeek(FillDaily(entries, rng), CombineSum)

	want := []WeekBucket{
		{
			WeekKey:   calendar.WeekKey{ISOYear: 2024, Week: 52},
			WeekRange: span(day(2024, time.December, 23), day(2024, time.December, 29)),
			Days:      1,
			Macros:    Macros{Calories: 100},
		},
		{
			WeekKey:   calendar.WeekKey{ISOYear: 2025, Week: 1},
			WeekRange: span(day(2024, time.December, 30), day(2025, time.January, 5)),
			Days:      3,
			Macros:    Macros{Calories: 900},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("GroupByWeek mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "2025-W01", got[1].WeekKey.String())
}

func TestGroupByWeekAverageDividesByContributedDays(t *testing.T) {
	// Wednesday through Friday of one week.
	rng := span(day(2024, time.January, 3), day(2024, time.January, 5))
	entries := []model.LogEntry{
		entry(day(2024, time.January, 3), 30, 10, 60, 300),
		entry(day(2024, time.January, 5), 60, 20, 90, 600),
	}

	got := GroupByWeek(FillDaily(entries, rng), CombineAvg)

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Days)
	assert.Equal(t, Macros{Protein: 30, Fat: 10, Carbs: 50, Calories: 300}, got[0].Macros)
	assert.Equal(t, span(day(2024, time.January, 1), day(2024, time.January, 7)), got[0].WeekRange)
}

func TestGroupByWeekEmpty(t *testing.T) {
	assert.Empty(t, GroupByWeek(nil, CombineSum))
	assert.Empty(t, GroupByMonth(nil))
}

func TestGroupByMonthRangeFromData(t *testing.T) {
	rng := span(day(2024, time.January, 30), day(2024, time.February, 2))
	entries := []model.LogEntry{
		kcal(day(2024, time.January, 31), 1000),
		kcal(day(2024, time.February, 1), 1200),
		kcal(day(2024, time.February, 2), 800),
	}

	got := GroupByMonth(FillDaily(entries, rng))

	want := []MonthBucket{
		{
			MonthKey:   "2024-01",
			MonthRange: span(day(2024, time.January, 30), day(2024, time.January, 31)),
			Label:      "January 2024",
			Macros:     Macros{Calories: 1000},
		},
		{
			MonthKey:   "2024-02",
			MonthRange: span(day(2024, time.February, 1), day(2024, time.February, 2)),
			Label:      "February 2024",
			Macros:     Macros{Calories: 2000},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("GroupByMonth mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByMonthPreservesTotals(t *testing.T) {
	rng := span(day(2024, time.March, 20), day(2024, time.May, 10))
	entries := []model.LogEntry{
		entry(day(2024, time.March, 21), 80, 40, 200, 1800),
		entry(day(2024, time.April, 1), 90, 50, 210, 2000),
		entry(day(2024, time.April, 30), 100, 45, 190, 1900),
		entry(day(2024, time.May, 9), 70, 35, 180, 1700),
	}

	days := FillDaily(entries, rng)
	months := GroupByMonth(days)

	require.Len(t, months, 3)
	assert.Equal(t, Totals(days), Totals(months))
}

func TestParseCombine(t *testing.T) {
	c, err := ParseCombine("")
	require.NoError(t, err)
	assert.Equal(t, CombineAvg, c)

	c, err = ParseCombine("SUM")
	require.NoError(t, err)
	assert.Equal(t, CombineSum, c)

	_, err = ParseCombine("max")
	assert.Error(t, err)
}
