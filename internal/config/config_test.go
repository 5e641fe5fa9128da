package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	t.Setenv("ISLE_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, time.Second/60, cfg.Sim.TickInterval())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isle.yaml")
	body := `
sim:
  tick_rate: 30
  seed: 77
  duration_seconds: 5
storage:
  backend: badger
  path: /tmp/isle
eventbus:
  url: nats://127.0.0.1:4222
metrics:
  port: 9100
telemetry:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Sim.TickRate)
	assert.Equal(t, int64(77), cfg.Sim.Seed)
	assert.Equal(t, 5*time.Second, cfg.Sim.Duration())
	assert.Equal(t, "village", cfg.Sim.StartMap, "незаданные поля берутся из Default")
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "default", cfg.Storage.Slot)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.EventBus.GetURL())
	assert.Equal(t, ":9100", cfg.Metrics.Addr())
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "memory-isle", cfg.Telemetry.ServiceName)
}

func TestLoad_FromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sim:\n  seed: 9\n"), 0o644))
	t.Setenv("ISLE_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Sim.Seed)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sim: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestEnvFallbacks(t *testing.T) {
	t.Run("порт: конфиг важнее env", func(t *testing.T) {
		t.Setenv("ISLE_METRICS_PORT", "9999")
		m := MetricsConfig{Port: 9100}
		assert.Equal(t, 9100, m.GetPort())
	})
	t.Run("порт из env", func(t *testing.T) {
		t.Setenv("ISLE_METRICS_PORT", "9999")
		assert.Equal(t, 9999, (&MetricsConfig{}).GetPort())
	})
	t.Run("мусор в env даёт дефолт", func(t *testing.T) {
		t.Setenv("ISLE_METRICS_PORT", "abc")
		assert.Equal(t, 2112, (&MetricsConfig{}).GetPort())
	})
	t.Run("адрес Redis из env", func(t *testing.T) {
		t.Setenv("ISLE_REDIS_ADDR", "redis:6380")
		assert.Equal(t, "redis:6380", (&StorageConfig{}).GetRedisAddr())
	})
	t.Run("пустой URL шины", func(t *testing.T) {
		t.Setenv("ISLE_NATS_URL", "")
		assert.Equal(t, "", (&EventBusConfig{}).GetURL())
	})
}

func TestSimConfig_ZeroRate(t *testing.T) {
	s := SimConfig{}
	assert.Equal(t, time.Second/60, s.TickInterval())
	assert.Equal(t, time.Duration(0), s.Duration())
}
