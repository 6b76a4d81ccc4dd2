package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/saadjs/kcal-trends/internal/trends"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(Options{SearchPaths: []string{dir}, DotEnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, EnergyKcal, cfg.EnergyUnit)
	assert.Equal(t, 7, cfg.DefaultDays)
	assert.Equal(t, trends.CombineAvg, cfg.Combine())
	assert.True(t, cfg.TrendGoals().IsZero())
	require.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", strings.Join([]string{
		"timezone: UTC",
		"energy_unit: KJ",
		"default_days: 30",
		"week_combine: sum",
		"goals:",
		"  calories: 2200",
		"  protein: 150",
	}, "\n"))
	t.Setenv("KCAL_GOALS_PROTEIN", "160")
	t.Setenv("KCAL_DEFAULT_DAYS", "14")

	cfg, err := Load(Options{SearchPaths: []string{dir}, DotEnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, EnergyKj, cfg.EnergyUnit)
	assert.Equal(t, 14, cfg.DefaultDays)
	assert.Equal(t, trends.CombineSum, cfg.Combine())
	assert.Equal(t, trends.Goals{Calories: 2200, Protein: 160}, cfg.TrendGoals())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml"), DotEnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "KCAL_GOALS_FAT=70\n")
	t.Cleanup(func() { _ = os.Unsetenv("KCAL_GOALS_FAT") })

	cfg, err := Load(Options{SearchPaths: []string{dir}, DotEnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 70.0, cfg.Goals.Fat)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Config{
		Timezone:    "Mars/Olympus_Mons",
		EnergyUnit:  "joules",
		DefaultDays: 0,
		WeekCombine: "median",
		LogLevel:    "chatty",
		Goals:       GoalsConfig{Calories: -1, Fat: -2},
	}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "configuration validation failed:"))
	for _, want := range []string{
		"invalid timezone 'Mars/Olympus_Mons'",
		"invalid energy_unit 'joules'",
		"invalid default_days 0",
		"invalid week_combine 'median'",
		"invalid log_level 'chatty'",
		"invalid goals.calories -1",
		"invalid goals.fat -2",
	} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, "goals.protein")
}

func TestLocationLocal(t *testing.T) {
	cfg := Config{Timezone: "local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
