// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/internal/platform/dberr"
)

// Service is the data access boundary used by every presentation layer.
//
// # Results
//
// Every failing call returns its sentinel value (an empty non-nil slice for
// lists, nil for single records) together with an [*apperr.AppError] whose
// code names the failure kind. Backend failures are logged here, so callers
// only decide how to present them.
//
// # Duplicate submissions
//
// Concurrent creates with the same normalized payload, and concurrent
// updates of the same record with the same patch, share one backend call and
// its result. Once started, that call runs to completion even if the caller
// that started it goes away.
type Service struct {
	repo     Repository
	sorter   *Sorter
	logger   *slog.Logger
	inflight singleflight.Group
}

// Listing is a display view derived from the full record set.
type Listing struct {
	Artists []*Artist
	Total   int
	Query   string
	Sort    SortKey
}

func NewService(repo Repository, sorter *Sorter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sorter: sorter,
		logger: logger,
	}
}

// ListArtists loads every record, newest first.
func (service *Service) ListArtists(ctx context.Context) ([]*Artist, error) {
	artists, err := service.repo.ListArtists(ctx)
	if err != nil {
		service.logger.ErrorContext(ctx, "artist_list_failed", slog.Any("error", err))
		return []*Artist{}, apperr.Classify(err)
	}
	if artists == nil {
		artists = []*Artist{}
	}
	return artists, nil
}

// Browse loads every record and derives the filtered, ordered view of it.
// On load failure the listing is empty and the error is returned alongside.
func (service *Service) Browse(ctx context.Context, query string, key SortKey) (Listing, error) {
	artists, err := service.ListArtists(ctx)
	listing := Listing{
		Artists: service.sorter.View(artists, query, key),
		Total:   len(artists),
		Query:   query,
		Sort:    key,
	}
	return listing, err
}

// GetArtist returns the record or nil.
func (service *Service) GetArtist(ctx context.Context, id string) (*Artist, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dberr.ErrNotFound
	}

	a, err := service.repo.GetArtist(ctx, id)
	if err != nil {
		service.logFailure(ctx, "artist_get_failed", err, slog.String("artist_id", id))
		return nil, apperr.Classify(err)
	}
	return a, nil
}

// CreateArtist validates and persists a new record. It returns nil on any
// failure; resubmitting is the caller's choice, nothing is retried here.
func (service *Service) CreateArtist(ctx context.Context, input Input) (*Artist, error) {
	if err := ValidateInput(input).Err(); err != nil {
		return nil, err
	}
	input = input.Normalize()

	result, err, shared := service.inflight.Do("create:"+fingerprint(input), func() (any, error) {
		return service.repo.CreateArtist(context.WithoutCancel(ctx), input)
	})
	if err != nil {
		service.logFailure(ctx, "artist_create_failed", err, slog.String("nickname", input.Nickname))
		return nil, apperr.Classify(err)
	}

	created := result.(*Artist)
	service.logger.InfoContext(ctx, "artist_created",
		slog.String("artist_id", created.ID),
		slog.String("nickname", created.Nickname),
		slog.Bool("shared", shared),
	)
	return created.Clone(), nil
}

// UpdateArtist validates and applies a partial update. It returns nil on any
// failure, including an unknown id.
func (service *Service) UpdateArtist(ctx context.Context, id string, patch Patch) (*Artist, error) {
	if err := ValidatePatch(patch).Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, dberr.ErrNotFound
	}

	result, err, shared := service.inflight.Do("update:"+id+":"+fingerprint(patch.Changes()), func() (any, error) {
		return service.repo.UpdateArtist(context.WithoutCancel(ctx), id, patch)
	})
	if err != nil {
		service.logFailure(ctx, "artist_update_failed", err, slog.String("artist_id", id))
		return nil, apperr.Classify(err)
	}

	updated := result.(*Artist)
	service.logger.InfoContext(ctx, "artist_updated",
		slog.String("artist_id", updated.ID),
		slog.Bool("shared", shared),
	)
	return updated.Clone(), nil
}

// DeleteArtist hard-deletes a record. A nil error is the success flag.
func (service *Service) DeleteArtist(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return dberr.ErrNotFound
	}

	if err := service.repo.DeleteArtist(ctx, id); err != nil {
		service.logFailure(ctx, "artist_delete_failed", err, slog.String("artist_id", id))
		return apperr.Classify(err)
	}

	service.logger.WarnContext(ctx, "artist_deleted", slog.String("artist_id", id))
	return nil
}

// SearchArtists runs the backend-side search (nickname, type or email
// containing query, case-insensitively), newest first. An empty query lists
// everything.
func (service *Service) SearchArtists(ctx context.Context, query string) ([]*Artist, error) {
	if query == "" {
		return service.ListArtists(ctx)
	}

	artists, err := service.repo.SearchArtists(ctx, query)
	if err != nil {
		service.logger.ErrorContext(ctx, "artist_search_failed", slog.String("query", query), slog.Any("error", err))
		return []*Artist{}, apperr.Classify(err)
	}
	if artists == nil {
		artists = []*Artist{}
	}
	return artists, nil
}

// Validate runs the form rules without persisting anything.
func (service *Service) Validate(input Input) map[string]string {
	return ValidateInput(input).Fields()
}

// Ping reports backend health when the repository supports it.
func (service *Service) Ping(ctx context.Context) error {
	if pinger, ok := service.repo.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// logFailure logs not-found at info level and everything else as an error.
func (service *Service) logFailure(ctx context.Context, event string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("code", apperr.CodeOf(err)), slog.Any("error", err))
	if apperr.IsNotFound(err) {
		service.logger.InfoContext(ctx, event, attrs...)
		return
	}
	service.logger.ErrorContext(ctx, event, attrs...)
}

// fingerprint keys the in-flight group. json.Marshal sorts map keys, so equal
// payloads always produce the same key.
func fingerprint(payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(raw)
}
