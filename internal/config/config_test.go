package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, cfg.Database.WriterDSN, cfg.Database.ReaderDSN, "reader falls back to writer DSN")
	assert.Equal(t, "pedidos.events", cfg.Messaging.Kafka.Topic)
	assert.Equal(t, "panel-pedidos", cfg.Observability.ServiceName)
	assert.Equal(t, "/metrics", cfg.Observability.PrometheusPath)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
}

func TestNewRejectsUnknownCacheDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := New()
	require.Error(t, err)
}

func TestNewDisabledCacheForcesNoop(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "noop", cfg.Cache.Driver)
}

func TestNewDisabledMessagingForcesNoop(t *testing.T) {
	t.Setenv("MESSAGING_ENABLED", "false")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "noop", cfg.Messaging.Driver)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "hello")
	t.Setenv("X_INT", "42")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_DUR", "90s")
	t.Setenv("X_SLICE", "a, b ,,c")

	assert.Equal(t, "hello", getEnv("X_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("X_ABSENT", "fallback"))
	assert.Equal(t, 42, getEnvAsInt("X_INT", 0))
	assert.Equal(t, 7, getEnvAsInt("X_ABSENT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", false))
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_DUR", time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsStringSlice("X_SLICE", nil))
	assert.Equal(t, []string{"z"}, getEnvAsStringSlice("X_ABSENT", []string{"z"}))
}

func TestPrometheusPathNormalised(t *testing.T) {
	t.Setenv("OBS_PROMETHEUS_PATH", "metricas")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/metricas", cfg.Observability.PrometheusPath)
}
