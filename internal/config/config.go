// Package config loads user settings from config.yaml, a .env file and
// KCAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/saadjs/kcal-trends/internal/log"
	"github.com/saadjs/kcal-trends/internal/trends"
	"github.com/spf13/viper"
)

const envPrefix = "KCAL"

const (
	EnergyKcal = "kcal"
	EnergyKj   = "kj"
)

type Config struct {
	DBPath      string      `mapstructure:"db_path"`
	Timezone    string      `mapstructure:"timezone"`
	EnergyUnit  string      `mapstructure:"energy_unit"`
	DefaultDays int         `mapstructure:"default_days"`
	WeekCombine string      `mapstructure:"week_combine"`
	LogLevel    string      `mapstructure:"log_level"`
	Goals       GoalsConfig `mapstructure:"goals"`
}

// GoalsConfig holds daily targets. Zero means no goal.
type GoalsConfig struct {
	Calories float64 `mapstructure:"calories"`
	Protein  float64 `mapstructure:"protein"`
	Carbs    float64 `mapstructure:"carbs"`
	Fat      float64 `mapstructure:"fat"`
}

// Options controls where Load looks. Empty fields fall back to defaults.
type Options struct {
	// ConfigFile is an explicit path; it must exist when set.
	ConfigFile  string
	SearchPaths []string
	DotEnvFile  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "")
	v.SetDefault("timezone", "")
	v.SetDefault("energy_unit", EnergyKcal)
	v.SetDefault("default_days", 7)
	v.SetDefault("week_combine", string(trends.CombineAvg))
	v.SetDefault("log_level", "warn")
	v.SetDefault("goals.calories", 0)
	v.SetDefault("goals.protein", 0)
	v.SetDefault("goals.carbs", 0)
	v.SetDefault("goals.fat", 0)
}

// Load reads configuration. A missing config file in the search paths is
// fine; a missing explicit ConfigFile is not.
func Load(opts Options) (*Config, error) {
	if err := loadDotEnv(opts.DotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range opts.SearchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.EnergyUnit = strings.ToLower(strings.TrimSpace(cfg.EnergyUnit))
	return &cfg, nil
}

func loadDotEnv(path string) error {
	var err error
	if path == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.EnergyUnit != EnergyKcal && c.EnergyUnit != EnergyKj {
		problems = append(problems, fmt.Sprintf("invalid energy_unit '%s': must be kcal or kj", c.EnergyUnit))
	}
	if c.DefaultDays < 1 || c.DefaultDays > 366 {
		problems = append(problems, fmt.Sprintf("invalid default_days %d: must be between 1 and 366", c.DefaultDays))
	}
	if _, err := trends.ParseCombine(c.WeekCombine); err != nil {
		problems = append(problems, fmt.Sprintf("invalid week_combine '%s': must be avg or sum", c.WeekCombine))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log_level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	goals := []struct {
		name  string
		value float64
	}{
		{"calories", c.Goals.Calories},
		{"protein", c.Goals.Protein},
		{"carbs", c.Goals.Carbs},
		{"fat", c.Goals.Fat},
	}
	for _, g := range goals {
		if g.value < 0 {
			problems = append(problems, fmt.Sprintf("invalid goals.%s %g: must not be negative", g.name, g.value))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Location resolves Timezone. Empty or "local" means the system zone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %v", tz, err)
	}
	return loc, nil
}

func (c *Config) Combine() trends.Combine {
	combine, err := trends.ParseCombine(c.WeekCombine)
	if err != nil {
		return trends.CombineAvg
	}
	return combine
}

func (c *Config) Level() slog.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

func (c *Config) TrendGoals() trends.Goals {
	return trends.Goals{
		Calories: c.Goals.Calories,
		Protein:  c.Goals.Protein,
		Carbs:    c.Goals.Carbs,
		Fat:      c.Goals.Fat,
	}
}
