package kcal

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/log"
	"github.com/saadjs/kcal-trends/internal/logstore"
	"github.com/saadjs/kcal-trends/internal/trends"
	"github.com/spf13/cobra"
)

var (
	trendsRange   string
	trendsFrom    string
	trendsTo      string
	trendsGroup   string
	trendsCombine string
	trendsJSON    bool
)

// trendsReport is the JSON shape of `kcal trends --json`.
type trendsReport struct {
	Series     trends.Series        `json:"series"`
	Combine    trends.Combine       `json:"combine"`
	EnergyUnit string               `json:"energy_unit"`
	Goals      *trends.GoalProgress `json:"goal_progress,omitempty"`
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show day, week or month totals for a period",
	Long: `Show gap-filled totals for a period.

Ranges: today, week (current ISO week), month (current month), 30d (last 30
days) or custom (--from/--to, default the last default_days days). Grouping is
chosen from the range length; --group overrides it for month, 30d and custom
ranges longer than 14 days. Month and 30d show one row per day unless --group
is given; --group auto keeps the length-based choice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := trends.ParseRangeMode(trendsRange)
		if err != nil {
			return err
		}
		override, err := groupingOverride(mode, trendsGroup, cmd.Flags().Changed("group"))
		if err != nil {
			return err
		}
		combine := runtimeConfig().Combine()
		if strings.TrimSpace(trendsCombine) != "" {
			if combine, err = trends.ParseCombine(trendsCombine); err != nil {
				return err
			}
		}
		now, err := currentDate()
		if err != nil {
			return err
		}
		rng, err := resolveTrendRange(mode, now, trendsFrom, trendsTo, runtimeConfig().DefaultDays)
		if err != nil {
			return err
		}

		grouping := trends.SelectGrouping(rng, mode, override)
		if cmd.Flags().Changed("group") && override != "" && grouping != override {
			runtimeLogger().Warn("grouping override not applied for this range",
				"requested", string(override), "grouping", string(grouping), log.FieldRange, rng.String())
		}

		return withStore(cmd, func(ctx context.Context, store *logstore.Store) error {
			fetch := fetchRange(rng, mode)
			entries, err := store.FetchEntriesForRange(ctx, fetch.Start, fetch.End)
			if err != nil {
				return err
			}
			report := trendsReport{
				Series:     trends.BuildSeries(entries, rng, mode, grouping, combine),
				Combine:    combine,
				EnergyUnit: runtimeConfig().EnergyUnit,
			}
			if goals := runtimeConfig().TrendGoals(); !goals.IsZero() {
				avg, err := trends.Average(trends.FillDaily(entries, rng))
				if err == nil {
					progress := trends.ProgressTowardGoals(avg, goals)
					report.Goals = &progress
				}
			}

			if trendsJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printSeries(cmd.OutOrStdout(), report, paletteFor(cmd.OutOrStdout()))
			return nil
		})
	},
}

func init() {
	trendsCmd.Flags().StringVar(&trendsRange, "range", "", "Range: today|week|month|30d|custom")
	trendsCmd.Flags().StringVar(&trendsFrom, "from", "", "Custom range start date YYYY-MM-DD")
	trendsCmd.Flags().StringVar(&trendsTo, "to", "", "Custom range end date YYYY-MM-DD (default today)")
	trendsCmd.Flags().StringVar(&trendsGroup, "group", "auto", "Grouping override: auto|day|week|month")
	trendsCmd.Flags().StringVar(&trendsCombine, "combine", "", "How days fold into weeks: avg|sum (default from config)")
	trendsCmd.Flags().BoolVar(&trendsJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(trendsCmd)
}

// groupingOverride reads --group. Left unset, month and 30d ranges are shown
// per day, like a fresh pick of those ranges in the web view.
func groupingOverride(mode trends.RangeMode, value string, changed bool) (trends.GroupingMode, error) {
	if !changed && (mode == trends.RangeMonth || mode == trends.RangeRolling30) {
		return trends.GroupingDay, nil
	}
	return trends.ParseGroupingMode(value)
}

// resolveTrendRange turns a range mode into concrete dates. Custom ranges
// default to the last defaultDays days ending today.
func resolveTrendRange(mode trends.RangeMode, today civil.Date, from, to string, defaultDays int) (calendar.DateRange, error) {
	switch mode {
	case trends.RangeToday:
		return calendar.DateRange{Start: today, End: today}, nil
	case trends.RangeWeek:
		return calendar.CurrentWeekRange(today), nil
	case trends.RangeMonth:
		return calendar.CurrentMonthRange(today), nil
	case trends.RangeRolling30:
		return calendar.DefaultRange(today, 30), nil
	}

	end := today
	if strings.TrimSpace(to) != "" {
		d, err := calendar.ParseDate(strings.TrimSpace(to))
		if err != nil {
			return calendar.DateRange{}, fmt.Errorf("invalid --to %q (expected YYYY-MM-DD)", to)
		}
		end = d
	}
	start := calendar.DefaultRange(end, defaultDays).Start
	if strings.TrimSpace(from) != "" {
		d, err := calendar.ParseDate(strings.TrimSpace(from))
		if err != nil {
			return calendar.DateRange{}, fmt.Errorf("invalid --from %q (expected YYYY-MM-DD)", from)
		}
		start = d
	}
	return calendar.NewRange(start, end)
}

// fetchRange widens the current-week view to the full ISO week, which is
// what the series shows.
func fetchRange(rng calendar.DateRange, mode trends.RangeMode) calendar.DateRange {
	if mode == trends.RangeWeek {
		return calendar.ISOWeek(rng.Start).Range()
	}
	return rng
}
