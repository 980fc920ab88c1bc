package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "/api", cfg.Server.BasePath)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.True(t, cfg.Server.RateLimit.Enabled)

		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, int32(10), cfg.Database.MaxConns)
		assert.True(t, cfg.Database.EnsureSchema)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.False(t, cfg.Cache.Enabled)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.False(t, cfg.RabbitMQ.Enabled)
		assert.Equal(t, "customer-service", cfg.RabbitMQ.ExchangeName)

		assert.Equal(t, "*/5 * * * *", cfg.Batch.StatsSchedule)
		assert.Equal(t, time.Minute, cfg.Batch.StatsTimeout)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("DATABASE_DRIVER", "memory")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "memory", cfg.Database.Driver)
	})

	t.Run("Config file values are read", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte("server:\n  port: 7070\nlogger:\n  level: debug\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logger.Level)
	})

	t.Run("Return error when config file is invalid", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: [unclosed"), 0o644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}
