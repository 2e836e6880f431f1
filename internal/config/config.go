// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every setting the assistant reads at start.
type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string
	CatalogSeed    string
	ShippingSeed   uint64
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env files (if present) and then the process environment.
// Values already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:        getenv("APP_PORT", "8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "console"),
		CatalogSeed: os.Getenv("CATALOG_SEED"),
	}

	var err error
	if cfg.ShippingSeed, err = strconv.ParseUint(getenv("SHIPPING_SEED", "0"), 10, 64); err != nil {
		return nil, fmt.Errorf("SHIPPING_SEED: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "5"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "10")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("rate limit must be positive (rps=%v, burst=%d)", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
