package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "5001", cfg.Server.Port)
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.Equal(t, 10, cfg.Store.Capacity)
	require.Equal(t, 24*time.Hour, cfg.Store.TTL)
	require.Equal(t, time.Duration(0), cfg.Store.SweepInterval)
	require.Equal(t, "https://openrouter.ai/api/v1", cfg.Upstream.BaseURL)
	require.Equal(t, 60*time.Second, cfg.Upstream.Timeout)
	require.InDelta(t, 1.2, cfg.Upstream.Temperature, 0.0001)
	require.InDelta(t, 0.9, cfg.Upstream.TopP, 0.0001)
	require.Equal(t, 2500, cfg.Upstream.MaxTokens)
	require.Greater(t, cfg.Server.WriteTimeout, cfg.Upstream.Timeout)
	require.Equal(t, "", cfg.RedisAddr())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("STORE_CAPACITY", "5")
	t.Setenv("STORE_TTL", "2h")
	t.Setenv("UPSTREAM_BASE_URL", "http://upstream.local/v1/")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "localhost:6380", cfg.RedisAddr())
	require.Equal(t, BackendRedis, cfg.Store.Backend)
	require.Equal(t, 5, cfg.Store.Capacity)
	require.Equal(t, 2*time.Hour, cfg.Store.TTL)
	require.Equal(t, "http://upstream.local/v1", cfg.Upstream.BaseURL)
	require.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("STORE_CAPACITY", "0")
	_, err = LoadConfig()
	require.Error(t, err)
}
