package kcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/logstore"
	"github.com/saadjs/kcal-trends/internal/model"
	"github.com/spf13/cobra"
)

var (
	logName     string
	logDate     string
	logTime     string
	logGrams    float64
	logProtein  float64
	logFat      float64
	logCarbs    float64
	logCalories float64

	logListFrom  string
	logListTo    string
	logListLimit int
	logListJSON  bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Add, list and import food logs",
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDateOrToday("date", logDate)
		if err != nil {
			return err
		}
		created, err := parseLogTime(d, logTime)
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, store *logstore.Store) error {
			id, err := store.Add(ctx, logstore.AddInput{
				Name:      logName,
				Grams:     logGrams,
				ProteinG:  logProtein,
				FatG:      logFat,
				CarbsG:    logCarbs,
				Calories:  logCalories,
				Date:      d,
				CreatedAt: created,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added log %d: %s on %s (%.0f kcal)\n", id, strings.TrimSpace(logName), d, logCalories)
			return nil
		})
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List food logs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := logstore.ListFilter{Limit: logListLimit}
		var err error
		if filter.From, err = parseOptionalDate("from", logListFrom); err != nil {
			return err
		}
		if filter.To, err = parseOptionalDate("to", logListTo); err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, store *logstore.Store) error {
			items, err := store.List(ctx, filter)
			if err != nil {
				return err
			}
			if logListJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No food logs found.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, l := range items {
				rows = append(rows, []string{
					fmt.Sprintf("%d", l.ID),
					l.Date.String(),
					l.Name,
					formatEnergy(l.Calories, runtimeConfig().EnergyUnit),
					fmt.Sprintf("%.1f", l.ProteinG),
					fmt.Sprintf("%.1f", l.CarbsG),
					fmt.Sprintf("%.1f", l.FatG),
				})
			}
			fmt.Fprintln(out, newTable("ID", "DATE", "NAME", "ENERGY", "P", "C", "F").Rows(rows...).String())
			return nil
		})
	},
}

var logImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a JSON array of daily log entries",
	Long: `Import a JSON array of objects with date, protein, fat, carbs and calories.
Numbers may be given as strings; values that are not numbers are stored as 0.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read import file %q: %w", path, err)
		}
		var entries []model.LogEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parse import file %q: %w", path, err)
		}
		return withStore(cmd, func(ctx context.Context, store *logstore.Store) error {
			res, err := store.Import(ctx, path, entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (batch %d)\n", res.Count, res.BatchID)
			return nil
		})
	},
}

func init() {
	logAddCmd.Flags().StringVar(&logName, "name", "", "Food name")
	logAddCmd.Flags().StringVar(&logDate, "date", "", "Log date YYYY-MM-DD (default today)")
	logAddCmd.Flags().StringVar(&logTime, "time", "", "Time eaten HH:MM (default now)")
	logAddCmd.Flags().Float64Var(&logGrams, "grams", 0, "Portion size in grams")
	logAddCmd.Flags().Float64Var(&logProtein, "protein", 0, "Protein grams")
	logAddCmd.Flags().Float64Var(&logFat, "fat", 0, "Fat grams")
	logAddCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "Carb grams")
	logAddCmd.Flags().Float64Var(&logCalories, "calories", 0, "Energy in kcal")
	_ = logAddCmd.MarkFlagRequired("name")

	logListCmd.Flags().StringVar(&logListFrom, "from", "", "First date YYYY-MM-DD")
	logListCmd.Flags().StringVar(&logListTo, "to", "", "Last date YYYY-MM-DD")
	logListCmd.Flags().IntVar(&logListLimit, "limit", 50, "Maximum rows")
	logListCmd.Flags().BoolVar(&logListJSON, "json", false, "Output JSON")

	logCmd.AddCommand(logAddCmd, logListCmd, logImportCmd)
	rootCmd.AddCommand(logCmd)
}

func parseOptionalDate(flag, value string) (civil.Date, error) {
	if strings.TrimSpace(value) == "" {
		return civil.Date{}, nil
	}
	return parseDateOrToday(flag, value)
}
