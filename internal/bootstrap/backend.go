// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bootstrap chooses and opens the artist backend once at startup.

Selection (BACKEND=auto):

  - DATABASE_URL set: direct PostgreSQL, with migrations applied first.
  - SUPABASE_URL and SUPABASE_ANON_KEY set: the hosted table REST API.
  - Neither: a configuration error in development, the in-memory sample
    store with a warning everywhere else.

An explicit BACKEND value skips the detection and requires its own settings.
When REDIS_URL is set, the remote backends are wrapped in a read-through
cache; an unreachable cache is logged and skipped.
*/
package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/artists/internal/core/artist"
	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/internal/platform/config"
	"github.com/taibuivan/artists/internal/platform/constants"
	"github.com/taibuivan/artists/internal/platform/migration"
	pgstore "github.com/taibuivan/artists/internal/platform/postgres"
	redisstore "github.com/taibuivan/artists/internal/platform/redis"
)

// Backend is the opened repository plus what the process needs to watch and
// release it.
type Backend struct {
	// Name is "postgres", "rest" or "memory".
	Name string

	Repository artist.Repository

	// CheckCache is nil when no cache is in front of the repository.
	CheckCache func(ctx context.Context) error

	closers []func()
}

// Close releases every connection the backend opened, newest first.
func (backend *Backend) Close() {
	for i := len(backend.closers) - 1; i >= 0; i-- {
		backend.closers[i]()
	}
}

// CheckBackend pings the repository if it supports it.
func (backend *Backend) CheckBackend(ctx context.Context) error {
	if pinger, ok := backend.Repository.(artist.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// Select resolves the backend mode from configuration without opening anything.
func Select(cfg *config.Config) (config.BackendMode, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return config.BackendMemory, nil
	case config.BackendPostgres:
		if !cfg.HasDatabase() {
			return "", apperr.Configuration("BACKEND=postgres requires DATABASE_URL")
		}
		return config.BackendPostgres, nil
	case config.BackendREST:
		if !cfg.HasREST() {
			return "", apperr.Configuration("BACKEND=rest requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
		return config.BackendREST, nil
	}

	switch {
	case cfg.HasDatabase():
		return config.BackendPostgres, nil
	case cfg.HasREST():
		return config.BackendREST, nil
	case cfg.IsDevelopment():
		return "", apperr.Configuration("Backend URL and access key are missing; set them or BACKEND=memory")
	default:
		return config.BackendMemory, nil
	}
}

// Open connects the selected backend. The returned Backend must be closed.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	mode, err := Select(cfg)
	if err != nil {
		return nil, err
	}

	backend := &Backend{Name: string(mode)}

	switch mode {
	case config.BackendPostgres:
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			return nil, err
		}

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, apperr.Transport("connect", err)
		}
		backend.closers = append(backend.closers, pool.Close)
		backend.Repository = artist.NewPostgresRepository(pool, nil)

	case config.BackendREST:
		client := &http.Client{Timeout: constants.BackendRequestTimeout}
		repository, err := artist.NewRESTRepository(cfg.BackendURL, cfg.BackendKey, client, nil)
		if err != nil {
			return nil, err
		}
		backend.Repository = repository

	default:
		if cfg.Backend != config.BackendMemory {
			logger.Warn("backend_not_configured_using_sample_data")
		}
		backend.Repository = artist.NewMemoryRepository(artist.SampleArtists(), nil)
		logger.Info("backend_selected", slog.String("backend", backend.Name))
		return backend, nil
	}

	if cfg.RedisURL != "" {
		backend.attachCache(ctx, cfg, logger)
	}

	logger.Info("backend_selected",
		slog.String("backend", backend.Name),
		slog.Bool("cache", backend.CheckCache != nil),
	)
	return backend, nil
}

func (backend *Backend) attachCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	client, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Warn("artist_cache_disabled", slog.Any("error", err))
		return
	}

	backend.closers = append(backend.closers, func() {
		if err := client.Close(); err != nil {
			logger.Error("redis_close_failed", slog.Any("error", err))
		}
	})
	backend.Repository = artist.NewCachedRepository(backend.Repository, client, cfg.CacheTTL, logger)
	backend.CheckCache = func(ctx context.Context) error {
		return redisstore.Ping(ctx, client)
	}
}

