package kcal

import (
	"context"
	"fmt"

	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/logstore"
	"github.com/saadjs/kcal-trends/internal/trends"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show a day's intake and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrToday("date", todayDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, store *logstore.Store) error {
			entries, err := store.FetchEntriesForRange(ctx, target, target)
			if err != nil {
				return err
			}
			day := trends.FillDaily(entries, calendar.DateRange{Start: target, End: target})[0]
			c := runtimeConfig()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Date: %s (%s)\n", target, calendar.ShortWeekday(target))
			fmt.Fprintf(out, "Intake: %s\n", formatEnergy(day.Calories, c.EnergyUnit))
			fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", day.Protein, day.Carbs, day.Fat)
			fmt.Fprintf(out, "Split: %s\n", formatSplit(trends.MacroPercentages(day.Macros)))

			goals := c.TrendGoals()
			if goals.IsZero() {
				fmt.Fprintln(out, "Goal: not set")
				return nil
			}
			p := trends.ProgressTowardGoals(day.Macros, goals)
			fmt.Fprintf(out, "Goal: energy %s | P %s | C %s | F %s\n", goalPct(p.Calories), goalPct(p.Protein), goalPct(p.Carbs), goalPct(p.Fat))
			if goals.Calories > 0 {
				fmt.Fprintf(out, "Remaining: %s\n", formatEnergy(goals.Calories-day.Calories, c.EnergyUnit))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
