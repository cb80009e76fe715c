package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTH_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "database/inventory.db", cfg.SQLitePath)
	assert.Equal(t, 30, cfg.DeadStockDays)
	assert.Equal(t, 7, cfg.BurnRateWindowDays)
	assert.False(t, cfg.AuthEnabled)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("DEAD_STOCK_DAYS", "14")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 14, cfg.DeadStockDays)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}

func TestLoadAuthRequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.ErrorIs(t, err, ErrAuthWithoutSecret)
	assert.Nil(t, cfg)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "sitestock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("burn_rate_window_days: 10\ncors_origins: https://ops.example.com\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BurnRateWindowDays)
	assert.Equal(t, "https://ops.example.com", cfg.CORSOrigins)
}
