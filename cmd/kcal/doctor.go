package kcal

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/kcal-trends/internal/db"
	"github.com/saadjs/kcal-trends/internal/logstore"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			version, err := db.CurrentVersion(sqldb)
			if err != nil {
				return err
			}
			report, err := logstore.New(sqldb, runtimeLogger()).Check(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Schema version: %d (latest %d)\n", version, db.LatestVersion())
			fmt.Fprintf(out, "Food logs: %d\n", report.Total)
			fmt.Fprintf(out, "Invalid dates: %d\n", report.InvalidDates)
			fmt.Fprintf(out, "Invalid timestamps: %d\n", report.InvalidTimestamps)
			if version != db.LatestVersion() || report.InvalidDates > 0 || report.InvalidTimestamps > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
