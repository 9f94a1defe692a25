package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates runtime settings consumed by the service.
type Config struct {
	HTTP    HTTPConfig
	Log     LogConfig
	DB      DBConfig
	Admin   AdminConfig
	Metrics MetricsConfig
	Jobs    JobsConfig
}

// HTTPConfig stores listener and shutdown behavior.
type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// LogConfig controls slog handler behavior.
type LogConfig struct {
	Level     slog.Level
	Format    string
	AddSource bool
}

// DBConfig stores persistence layer settings.
type DBConfig struct {
	SQLitePath string
}

// AdminConfig holds the query-interface credential and trust-boundary flags.
// An empty Key rejects every admin request (fail closed).
type AdminConfig struct {
	Key         string
	BehindProxy bool
}

// MetricsConfig controls the Prometheus endpoint and middleware.
type MetricsConfig struct {
	Enabled bool
	Token   string
}

// JobsConfig schedules background maintenance.
type JobsConfig struct {
	// StatsSnapshotCron is the cron spec for the hit-count snapshot job;
	// empty disables it.
	StatsSnapshotCron string
}

// LoadConfig loads environment variables (optionally from .env files) into Config.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.SetEnvPrefix("PIXELBEACON")
	v.AutomaticEnv()

	if err := mergeDotEnvFiles(v); err != nil {
		return nil, err
	}

	cfg := &Config{}

	cfg.HTTP.Addr = fallback(v.GetString("HTTP_ADDR"), "0.0.0.0:8080")
	cfg.HTTP.ShutdownTimeout = parseDuration(fallback(v.GetString("SHUTDOWN_TIMEOUT"), "15s"), 15*time.Second)

	cfg.Log.Level = parseLogLevel(fallback(firstNonEmpty(
		v.GetString("LOG_LEVEL"),
		os.Getenv("LOG_LEVEL"),
	), "info"))
	cfg.Log.Format = strings.ToLower(fallback(firstNonEmpty(
		v.GetString("LOG_FORMAT"),
		os.Getenv("LOG_FORMAT"),
	), "json"))
	cfg.Log.AddSource = v.GetBool("LOG_ADD_SOURCE")

	cfg.DB.SQLitePath = filepath.Clean(fallback(v.GetString("DB_PATH"), filepath.Join("data", "pixelbeacon.db")))

	cfg.Admin.Key = firstNonEmpty(
		v.GetString("ADMIN_KEY"),
		os.Getenv("ADMIN_PASSWORD"),
	)
	cfg.Admin.BehindProxy = parseBool(firstNonEmpty(
		v.GetString("BEHIND_PROXY"),
		os.Getenv("BEHIND_PROXY"),
	), false)

	cfg.Metrics.Enabled = parseBool(v.GetString("METRICS_ENABLED"), true)
	cfg.Metrics.Token = v.GetString("METRICS_TOKEN")

	cfg.Jobs.StatsSnapshotCron = fallback(v.GetString("STATS_SNAPSHOT_CRON"), "@every 10m")

	return cfg, nil
}

func mergeDotEnvFiles(v *viper.Viper) error {
	for _, name := range []string{".env", ".env.local"} {
		file := filepath.Clean(name)
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat %s: %w", file, err)
		}
		v.SetConfigFile(file)
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("merge %s: %w", file, err)
		}
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseBool(raw string, def bool) bool {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return def
	}
	switch trimmed {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
