// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. An optional .env file
in the working directory is loaded first with 'joho/godotenv'; variables already
present in the process environment always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (backend, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Backend Modes

// BackendMode selects which artist repository implementation is wired at startup.
type BackendMode string

const (
	// BackendAuto picks postgres, then rest, then memory based on which settings are present.
	BackendAuto BackendMode = "auto"
	// BackendREST talks to the hosted table REST API.
	BackendREST BackendMode = "rest"
	// BackendPostgres connects straight to the hosted PostgreSQL database.
	BackendPostgres BackendMode = "postgres"
	// BackendMemory uses the in-process mock store.
	BackendMemory BackendMode = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the artist registry.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Backend selects the repository strategy.
	Backend BackendMode `env:"BACKEND" envDefault:"auto"`

	// Hosted backend (REST table API)
	BackendURL string `env:"SUPABASE_URL"`
	BackendKey string `env:"SUPABASE_ANON_KEY"`

	// Direct PostgreSQL connection to the hosted database
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Optional read-through cache (Redis). Empty disables caching.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"1m"`

	// CollationLocale is the BCP 47 tag used for nickname/type ordering.
	CollationLocale string `env:"COLLATION_LOCALE" envDefault:"ru"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a
// [Config] struct.
func Load() (*Config, error) {

	// A missing .env is normal in containers; anything else is a real problem.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current process environment onto a [Config] without
// touching the filesystem.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	switch cfg.Backend {
	case BackendAuto, BackendREST, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("config: unknown BACKEND %q", cfg.Backend)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasREST reports whether both hosted-backend parameters are present and the
// endpoint is an absolute http(s) URL.
func (c *Config) HasREST() bool {
	if c.BackendURL == "" || c.BackendKey == "" {
		return false
	}
	parsed, err := url.Parse(c.BackendURL)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// HasDatabase reports whether a direct PostgreSQL DSN is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
