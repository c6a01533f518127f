// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/artists/internal/platform/respond"
)

// checkTimeout bounds each readiness dependency check.
const checkTimeout = 3 * time.Second

// HealthDependencies holds the injectable dependency checkers for /ready.
type HealthDependencies struct {
	// Backend names the selected artist backend in the readiness report.
	Backend string

	// CheckBackend pings the artist backend. Its failure makes the service unready.
	CheckBackend func(ctx context.Context) error

	// CheckCache pings the optional cache. Its failure only degrades the report.
	CheckCache func(ctx context.Context) error
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)
	status := "ready"
	httpStatus := http.StatusOK

	if result := handler.check(request.Context(), handler.dependencies.Backend, handler.dependencies.CheckBackend); result != nil {
		results = append(results, *result)
		if !result.IsOK {
			status = "unavailable"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	if result := handler.check(request.Context(), "cache", handler.dependencies.CheckCache); result != nil {
		results = append(results, *result)
		if !result.IsOK && httpStatus == http.StatusOK {
			status = "degraded"
		}
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		"status": status,
		"checks": results,
	}})
}

// check runs one dependency probe; a nil probe is skipped.
func (handler *healthHandler) check(ctx context.Context, name string, probe func(context.Context) error) *checkResult {
	if probe == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	result := &checkResult{Name: name, IsOK: true}
	if err := probe(ctx); err != nil {
		result.IsOK = false
		result.Error = err.Error()
		handler.logger.ErrorContext(ctx, "readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
	}
	return result
}
