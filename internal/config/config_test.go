package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogEncoding)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.Seed)
	assert.False(t, cfg.Telemetry)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)

	rules := cfg.Rules()
	assert.InDelta(t, 0.15, rules.EventChance, 1e-9)
	assert.InDelta(t, 0.33, rules.InterceptChance, 1e-9)
	assert.Equal(t, 900*time.Millisecond, rules.RingInterval)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRAIL_SEED", "42")
	t.Setenv("TRAIL_INTERCEPT_CHANCE", "1")
	t.Setenv("TRAIL_CORS_ORIGINS", "http://localhost:3000,https://edgeai.example")
	t.Setenv("TRAIL_SESSION_TTL", "5m")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 1.0, cfg.Rules().InterceptChance)
	assert.Equal(t, []string{"http://localhost:3000", "https://edgeai.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestLoadConfigRejectsBadOdds(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRAIL_EVENT_CHANCE", "1.5")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRAIL_EVENT_CHANCE")
}

func TestLoadConfigRejectsTinySessionTTL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRAIL_SESSION_TTL", "1ns")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRAIL_SESSION_TTL")
}
