// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"log/slog"

	"github.com/taibuivan/artists/internal/api"
	"github.com/taibuivan/artists/internal/bootstrap"
	"github.com/taibuivan/artists/internal/core/artist"
	"github.com/taibuivan/artists/internal/platform/config"
)

// openFunc opens the artist backend; [bootstrap.Open] in production.
type openFunc func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bootstrap.Backend, error)

// wire builds the HTTP server on top of a freshly opened backend.
//
// Everything that can fail without touching the network runs before open, so
// a bad setting never leaves a pool or cache connection behind. On success
// the caller owns the returned backend and must close it.
func wire(ctx context.Context, cfg *config.Config, log *slog.Logger, open openFunc) (*api.Server, *bootstrap.Backend, error) {
	sorter, err := artist.NewSorter(cfg.CollationLocale)
	if err != nil {
		return nil, nil, err
	}

	backend, err := open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	artistService := artist.NewService(backend.Repository, sorter, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Backend:      backend.Name,
		CheckBackend: backend.CheckBackend,
		CheckCache:   backend.CheckCache,
	}, log)

	server := api.NewServer(cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Artist:    artist.NewHandler(artistService),
	})
	return server, backend, nil
}
