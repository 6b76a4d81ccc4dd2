package kcal

import (
	"context"

	"github.com/saadjs/kcal-trends/internal/logstore"
	"github.com/saadjs/kcal-trends/internal/trends"
	"github.com/spf13/cobra"
)

var (
	compareType string
	compareA    string
	compareB    string
	compareJSON bool
)

type comparisonReport struct {
	trends.ComparisonResult
	EnergyUnit string `json:"energy_unit"`
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare totals of two days, ISO weeks or months",
	Example: `  kcal compare --type day --a 2025-01-08 --b 2025-01-07
  kcal compare --type week --a 2025-W02 --b 2025-W01
  kcal compare --type month --a 2025-02 --b 2025-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := trends.ParseSelector(compareType, compareA)
		if err != nil {
			return err
		}
		b, err := trends.ParseSelector(compareType, compareB)
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, store *logstore.Store) error {
			res, err := trends.NewComparator(store, runtimeLogger()).Compare(ctx, a, b)
			if err != nil {
				return err
			}
			unit := runtimeConfig().EnergyUnit
			if compareJSON {
				return writeJSON(cmd.OutOrStdout(), comparisonReport{ComparisonResult: res, EnergyUnit: unit})
			}
			printComparison(cmd.OutOrStdout(), res, unit, paletteFor(cmd.OutOrStdout()))
			return nil
		})
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareType, "type", "day", "Period type: day|week|month")
	compareCmd.Flags().StringVar(&compareA, "a", "", "First period (YYYY-MM-DD, YYYY-Www or YYYY-MM)")
	compareCmd.Flags().StringVar(&compareB, "b", "", "Second period")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Output JSON")
	_ = compareCmd.MarkFlagRequired("a")
	_ = compareCmd.MarkFlagRequired("b")
	rootCmd.AddCommand(compareCmd)
}
