package kcal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/app"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/db"
	"github.com/saadjs/kcal-trends/internal/log"
	"github.com/saadjs/kcal-trends/internal/logstore"
	"github.com/spf13/cobra"
)

// today is swapped out in tests.
var today = calendar.Today

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	if v, err := db.CurrentVersion(sqldb); err == nil {
		runtimeLogger().WithComponent(log.ComponentStorage).Debug("schema ready",
			log.FieldOperation, log.OpMigrate,
			log.FieldPath, path,
			log.FieldVersion, v,
		)
	}
	return run(sqldb)
}

func withStore(cmd *cobra.Command, run func(context.Context, *logstore.Store) error) error {
	return withDB(func(sqldb *sql.DB) error {
		return run(cmd.Context(), logstore.New(sqldb, runtimeLogger()))
	})
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if c := runtimeConfig(); c.DBPath != "" {
		return c.DBPath, nil
	}
	return app.DefaultDBPath()
}

func currentDate() (civil.Date, error) {
	loc, err := runtimeConfig().Location()
	if err != nil {
		return civil.Date{}, err
	}
	return today(loc), nil
}

// parseDateOrToday reads a --date style flag, defaulting to today.
func parseDateOrToday(flag, value string) (civil.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return currentDate()
	}
	d, err := calendar.ParseDate(value)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", flag, value)
	}
	return d, nil
}

// parseLogTime combines a log date with an optional HH:MM in the configured
// timezone. Without a time the current instant is used.
func parseLogTime(date civil.Date, timeStr string) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Now(), nil
	}
	loc, err := runtimeConfig().Location()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date.String()+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --time %q (expected HH:MM)", timeStr)
	}
	return t, nil
}
