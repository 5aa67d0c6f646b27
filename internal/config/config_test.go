package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/guardian")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.SOSHoldThreshold)
	assert.Equal(t, 15*time.Second, cfg.LocationFixTimeout)
	assert.Equal(t, time.Duration(0), cfg.LocationMaxAge)
	assert.True(t, cfg.LocationHighAccuracy)
	assert.Equal(t, 0, cfg.HistoryLimit)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
	assert.Empty(t, cfg.WSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/guardian")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SOS_HOLD_THRESHOLD", "3s")
	t.Setenv("HISTORY_LIMIT", "500")
	t.Setenv("LOCATION_HIGH_ACCURACY", "false")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("WS_ALLOWED_ORIGINS", " https://app.example.com, ,https://m.example.com ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.SOSHoldThreshold)
	assert.Equal(t, 500, cfg.HistoryLimit)
	assert.False(t, cfg.LocationHighAccuracy)
	assert.Equal(t, 0, cfg.RedisDB, "invalid int falls back to default")
	assert.Equal(t, []string{"https://app.example.com", "https://m.example.com"}, cfg.WSAllowedOrigins)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/guardian")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
