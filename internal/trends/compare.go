package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/log"
	"github.com/saadjs/kcal-trends/internal/model"
	"golang.org/x/sync/errgroup"
)

type SelectorKind string

const (
	SelectDay   SelectorKind = "day"
	SelectWeek  SelectorKind = "week"
	SelectMonth SelectorKind = "month"
)

// PeriodSelector names one day, one ISO week or one calendar month. Only the
// field matching Kind is meaningful.
type PeriodSelector struct {
	Kind  SelectorKind     `json:"kind"`
	Day   civil.Date       `json:"day,omitempty"`
	Week  calendar.WeekKey `json:"week,omitempty"`
	Month string           `json:"month,omitempty"`
}

func DaySelector(d civil.Date) PeriodSelector {
	return PeriodSelector{Kind: SelectDay, Day: d}
}

func WeekSelector(isoYear, week int) PeriodSelector {
	return PeriodSelector{Kind: SelectWeek, Week: calendar.WeekKey{ISOYear: isoYear, Week: week}}
}

func MonthSelector(month string) PeriodSelector {
	return PeriodSelector{Kind: SelectMonth, Month: month}
}

// MarshalJSON writes only the field that matches Kind.
func (s PeriodSelector) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind  SelectorKind      `json:"kind"`
		Day   *civil.Date       `json:"day,omitempty"`
		Week  *calendar.WeekKey `json:"week,omitempty"`
		Month string            `json:"month,omitempty"`
	}{Kind: s.Kind}
	switch s.Kind {
	case SelectDay:
		out.Day = &s.Day
	case SelectWeek:
		out.Week = &s.Week
	case SelectMonth:
		out.Month = s.Month
	}
	return json.Marshal(out)
}

func (s PeriodSelector) String() string {
	switch s.Kind {
	case SelectDay:
		return s.Day.String()
	case SelectWeek:
		return s.Week.String()
	case SelectMonth:
		return s.Month
	}
	return string(s.Kind)
}

// ParseSelector reads YYYY-MM-DD, YYYY-Www or YYYY-MM depending on kind.
func ParseSelector(kind, value string) (PeriodSelector, error) {
	value = strings.TrimSpace(value)
	switch SelectorKind(strings.ToLower(strings.TrimSpace(kind))) {
	case SelectDay:
		d, err := calendar.ParseDate(value)
		if err != nil {
			return PeriodSelector{}, err
		}
		return DaySelector(d), nil
	case SelectWeek:
		key, err := calendar.ParseWeekKey(value)
		if err != nil {
			return PeriodSelector{}, err
		}
		return WeekSelector(key.ISOYear, key.Week), nil
	case SelectMonth:
		if _, _, err := calendar.ParseMonthKey(value); err != nil {
			return PeriodSelector{}, err
		}
		return MonthSelector(value), nil
	default:
		return PeriodSelector{}, fmt.Errorf("invalid period type %q (use day|week|month)", kind)
	}
}

// Resolve maps a selector to the calendar range it covers.
func Resolve(s PeriodSelector) (calendar.DateRange, error) {
	switch s.Kind {
	case SelectDay:
		if !s.Day.IsValid() {
			return calendar.DateRange{}, fmt.Errorf("invalid day %s", s.Day)
		}
		return calendar.DateRange{Start: s.Day, End: s.Day}, nil
	case SelectWeek:
		return calendar.WeekCalendarRange(s.Week.ISOYear, s.Week.Week)
	case SelectMonth:
		year, month, err := calendar.ParseMonthKey(s.Month)
		if err != nil {
			return calendar.DateRange{}, err
		}
		return calendar.MonthRange(year, month), nil
	default:
		return calendar.DateRange{}, fmt.Errorf("invalid period type %q", s.Kind)
	}
}

// EntryFetcher supplies the log entries for a closed date range.
type EntryFetcher interface {
	FetchEntriesForRange(ctx context.Context, start, end civil.Date) ([]model.LogEntry, error)
}

// PeriodSummary describes one side of a comparison. Average is taken over
// the days that have entries.
type PeriodSummary struct {
	Selector     PeriodSelector     `json:"selector"`
	Range        calendar.DateRange `json:"range"`
	DaysInRange  int                `json:"days_in_range"`
	DaysWithData int                `json:"days_with_data"`
	Totals       Macros             `json:"totals"`
	Average      Macros             `json:"average"`
	Split        MacroSplit         `json:"split"`
}

// DeltaStat compares A against B. PercentDelta is nil when B is 0, which
// means there is no baseline rather than no change.
type DeltaStat struct {
	A            float64  `json:"a"`
	B            float64  `json:"b"`
	Delta        float64  `json:"delta"`
	PercentDelta *float64 `json:"percent_delta,omitempty"`
}

type DeltaSummary struct {
	Protein  DeltaStat `json:"protein"`
	Fat      DeltaStat `json:"fat"`
	Carbs    DeltaStat `json:"carbs"`
	Calories DeltaStat `json:"calories"`
}

type ComparisonResult struct {
	A     PeriodSummary `json:"a"`
	B     PeriodSummary `json:"b"`
	Delta DeltaSummary  `json:"delta"`
}

// Comparator resolves two periods, fetches both and diffs their totals.
type Comparator struct {
	fetcher EntryFetcher
	logger  *log.Logger
}

func NewComparator(fetcher EntryFetcher, logger *log.Logger) *Comparator {
	if logger == nil {
		logger = log.Discard()
	}
	return &Comparator{
		fetcher: fetcher,
		logger:  logger.WithComponent(log.ComponentTrends),
	}
}

// Compare fetches both sides concurrently. A failed fetch is logged and
// treated as a period without entries; only bad selectors return an error.
func (c *Comparator) Compare(ctx context.Context, a, b PeriodSelector) (ComparisonResult, error) {
	selectors := [2]PeriodSelector{a, b}
	var ranges [2]calendar.DateRange
	for i, s := range selectors {
		r, err := Resolve(s)
		if err != nil {
			return ComparisonResult{}, fmt.Errorf("resolve period %s: %w", s, err)
		}
		ranges[i] = r
	}

	var sides [2][]model.LogEntry
	var g errgroup.Group
	for i := range selectors {
		i := i
		g.Go(func() error {
			sides[i] = c.fetch(ctx, ranges[i])
			return nil
		})
	}
	_ = g.Wait()

	sumA := summarizePeriod(selectors[0], ranges[0], sides[0])
	sumB := summarizePeriod(selectors[1], ranges[1], sides[1])
	return ComparisonResult{
		A:     sumA,
		B:     sumB,
		Delta: diffTotals(sumA.Totals, sumB.Totals),
	}, nil
}

func (c *Comparator) fetch(ctx context.Context, rng calendar.DateRange) []model.LogEntry {
	entries, err := c.fetcher.FetchEntriesForRange(ctx, rng.Start, rng.End)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch entries failed, using empty period",
			log.FieldOperation, log.OpFetch,
			log.FieldRange, rng.String(),
			log.FieldError, err.Error(),
		)
		return nil
	}
	return entries
}

func summarizePeriod(sel PeriodSelector, rng calendar.DateRange, entries []model.LogEntry) PeriodSummary {
	days := make([]DailyBucket, 0, len(entries))
	for _, d := range FillDaily(entries, rng) {
		if hasEntry(entries, d.Date) {
			days = append(days, d)
		}
	}
	totals := Totals(days)
	avg, err := Average(days)
	if err != nil {
		avg = Macros{}
	}
	return PeriodSummary{
		Selector:     sel,
		Range:        rng,
		DaysInRange:  rng.Days(),
		DaysWithData: len(days),
		Totals:       totals,
		Average:      avg,
		Split:        MacroPercentages(totals),
	}
}

func hasEntry(entries []model.LogEntry, d civil.Date) bool {
	for i := range entries {
		if entries[i].Date == d {
			return true
		}
	}
	return false
}

func diffTotals(a, b Macros) DeltaSummary {
	return DeltaSummary{
		Protein:  ComputeDelta(a.Protein, b.Protein),
		Fat:      ComputeDelta(a.Fat, b.Fat),
		Carbs:    ComputeDelta(a.Carbs, b.Carbs),
		Calories: ComputeDelta(a.Calories, b.Calories),
	}
}

// ComputeDelta returns a-b and, when b is non-zero, (a-b)/|b| in percent.
func ComputeDelta(a, b float64) DeltaStat {
	out := DeltaStat{
		A:     a,
		B:     b,
		Delta: a - b,
	}
	if b == 0 {
		return out
	}
	v := (a - b) / math.Abs(b) * 100
	out.PercentDelta = &v
	return out
}
