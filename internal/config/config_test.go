package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_PORT", "LOG_LEVEL", "LOG_FORMAT", "CATALOG_SEED",
		"SHIPPING_SEED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.CatalogSeed)
	assert.Zero(t, cfg.ShippingSeed)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestLoad_DotEnvAndOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\nSHIPPING_SEED=42\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	// godotenv only fills unset variables; clearEnv leaves them set to "".
	require.NoError(t, os.Unsetenv("APP_PORT"))
	require.NoError(t, os.Unsetenv("SHIPPING_SEED"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, uint64(42), cfg.ShippingSeed)
	assert.Equal(t, "warn", cfg.LogLevel, "process environment wins over the file")
}

func TestLoad_InvalidNumbers(t *testing.T) {
	tests := map[string]string{
		"SHIPPING_SEED":    "-1",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "0",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
