package kcal

import (
	"fmt"
	"os"

	"github.com/saadjs/kcal-trends/internal/app"
	"github.com/saadjs/kcal-trends/internal/config"
	"github.com/saadjs/kcal-trends/internal/log"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string

	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "kcal",
	Short:         "kcal charts calorie and macro trends from your terminal",
	Long:          "kcal is a local-first food log with day, week and month trends and period comparisons.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRuntime(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml")
}

// loadRuntime reads config and sets up logging before any subcommand runs.
func loadRuntime(cmd *cobra.Command) error {
	opts := config.Options{ConfigFile: configPath, SearchPaths: []string{"."}}
	if dir, err := app.ConfigDir(); err == nil {
		opts.SearchPaths = append([]string{dir}, opts.SearchPaths...)
	}
	loaded, err := config.Load(opts)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	logger = log.New(log.Config{
		Level:     cfg.Level(),
		Component: log.ComponentCLI,
		Output:    cmd.ErrOrStderr(),
	})
	log.SetDefault(logger)
	logger.WithComponent(log.ComponentConfig).Debug("config loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldPath, configPath,
		log.FieldVersion, version,
	)
	return nil
}

func runtimeConfig() *config.Config {
	if cfg == nil {
		return &config.Config{EnergyUnit: config.EnergyKcal, DefaultDays: 7, WeekCombine: "avg"}
	}
	return cfg
}

func runtimeLogger() *log.Logger {
	if logger == nil {
		return log.Discard()
	}
	return logger
}
