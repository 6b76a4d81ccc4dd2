package kcal

import (
	"fmt"

	"github.com/saadjs/kcal-trends/internal/app"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect kcal configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := runtimeConfig()
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		rows := [][]string{
			{"db_path", path},
			{"timezone", displayOr(c.Timezone, "local")},
			{"energy_unit", c.EnergyUnit},
			{"default_days", fmt.Sprintf("%d", c.DefaultDays)},
			{"week_combine", string(c.Combine())},
			{"log_level", c.Level().String()},
			{"goals.calories", goalValue(c.Goals.Calories)},
			{"goals.protein", goalValue(c.Goals.Protein)},
			{"goals.carbs", goalValue(c.Goals.Carbs)},
			{"goals.fat", goalValue(c.Goals.Fat)},
		}
		fmt.Fprintln(cmd.OutOrStdout(), newTable("KEY", "VALUE").Rows(rows...).String())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where kcal looks for config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			fmt.Fprintln(cmd.OutOrStdout(), configPath)
			return nil
		}
		path, err := app.DefaultConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func displayOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func goalValue(v float64) string {
	if v <= 0 {
		return "not set"
	}
	return fmt.Sprintf("%g", v)
}
