package bootstrap

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Isolate from any ambient environment.
	for _, key := range []string{"ADMIN_PASSWORD", "BEHIND_PROXY", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
		t.Setenv("PIXELBEACON_"+key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Admin.Key, "admin access fails closed by default")
	assert.False(t, cfg.Admin.BehindProxy)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "@every 10m", cfg.Jobs.StatsSnapshotCron)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("PIXELBEACON_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("PIXELBEACON_ADMIN_KEY", "sekrit")
	t.Setenv("PIXELBEACON_BEHIND_PROXY", "true")
	t.Setenv("PIXELBEACON_LOG_LEVEL", "debug")
	t.Setenv("PIXELBEACON_METRICS_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "sekrit", cfg.Admin.Key)
	assert.True(t, cfg.Admin.BehindProxy)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("1", false))
	assert.True(t, parseBool("yes", false))
	assert.False(t, parseBool("off", true))
	assert.True(t, parseBool("", true), "empty uses default")
	assert.False(t, parseBool("garbage", false), "unknown uses default")
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseDuration("5s", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("nope", time.Minute))
}
