package kcal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/saadjs/kcal-trends/cmd/kcal.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "kcal %s (commit %s, built %s)\n", version, commit, buildDate)
}
