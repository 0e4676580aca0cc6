/*
Package config loads server configuration.

SOURCES (highest precedence first):
  1. Environment variables with the STAFFING_ prefix (STAFFING_PORT, ...)
  2. A .env file in the working directory, loaded into the environment
  3. config.yaml in ".", "./config" or any extra search path
  4. Defaults below

KEYS:
  port                      HTTP port (8080)
  db_path                   SQLite path, ":memory:" for a throwaway store
  env                       "development" or "production"
  log_level                 debug, info, warn, error
  allowed_origins           CORS origins, comma separated in env vars
  snapshot_interval         Snapshot period as a duration ("15m"); 0 disables
  cache_size                Resolved-day cache entries
  week_numbering            "thursday" (default) or "iso"
  default_drive_time_hours  Staffing config for months with none stored
  default_overtime_hours
  default_job_duration_hours
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "STAFFING"

// Config holds all configuration values.
type Config struct {
	Port           int      `mapstructure:"port"`
	DBPath         string   `mapstructure:"db_path"`
	Env            string   `mapstructure:"env"`
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	SnapshotInterval time.Duration `mapstructure:"snapshot_interval"`
	CacheSize        int           `mapstructure:"cache_size"`
	WeekNumbering    string        `mapstructure:"week_numbering"`

	DefaultDriveTimeHours   float64 `mapstructure:"default_drive_time_hours"`
	DefaultOvertimeHours    float64 `mapstructure:"default_overtime_hours"`
	DefaultJobDurationHours float64 `mapstructure:"default_job_duration_hours"`
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration. Extra paths are searched for config.yaml after
// the defaults. A missing config file or .env file is not an error.
func Load(paths ...string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "staffing.db")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("snapshot_interval", "15m")
	v.SetDefault("cache_size", 128)
	v.SetDefault("week_numbering", "thursday")
	v.SetDefault("default_drive_time_hours", 0.5)
	v.SetDefault("default_overtime_hours", 0)
	v.SetDefault("default_job_duration_hours", 3)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.WeekNumbering != "thursday" && cfg.WeekNumbering != "iso" {
		return Config{}, fmt.Errorf("invalid week_numbering %q", cfg.WeekNumbering)
	}
	return cfg, nil
}
