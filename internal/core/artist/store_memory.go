// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/artists/internal/platform/dberr"
	"github.com/taibuivan/artists/pkg/uuid"
)

// MemoryRepository is the in-process fallback used when no backend is
// configured. Records live in a slice ordered newest CreatedAt first.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*Artist
	clock   func() time.Time
}

// NewMemoryRepository returns a store holding copies of seed. A nil clock
// means [time.Now].
func NewMemoryRepository(seed []*Artist, clock func() time.Time) *MemoryRepository {
	if clock == nil {
		clock = time.Now
	}

	records := make([]*Artist, 0, len(seed))
	for _, record := range seed {
		records = append(records, record.Clone())
	}
	slices.SortStableFunc(records, func(a, b *Artist) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return &MemoryRepository{records: records, clock: clock}
}

// SampleArtists returns the deterministic records the fallback store starts with.
func SampleArtists() []*Artist {
	base := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	sample := func(id, nickname, kind, instagram, telegram, email, phone string, age time.Duration) *Artist {
		at := base.Add(-age)
		return &Artist{
			ID:        id,
			Nickname:  nickname,
			Type:      optional(kind),
			Instagram: optional(instagram),
			Telegram:  optional(telegram),
			Email:     optional(email),
			Phone:     optional(phone),
			CreatedAt: at,
			UpdatedAt: at,
		}
	}

	return []*Artist{
		sample("01944f5a-6c00-7000-8000-000000000001", "Luna Vega", "DJ", "@lunavega", "@luna_vega", "luna@example.com", "+79991234567", 0),
		sample("01944f5a-6c00-7000-8000-000000000002", "Basso Profondo", "Vocalist", "@basso", "", "basso@example.com", "", 24*time.Hour),
		sample("01944f5a-6c00-7000-8000-000000000003", "Kite", "Producer", "", "@kite_beats", "", "+14155550123", 48*time.Hour),
	}
}

func (repository *MemoryRepository) ListArtists(_ context.Context) ([]*Artist, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	artists := make([]*Artist, 0, len(repository.records))
	for _, record := range repository.records {
		artists = append(artists, record.Clone())
	}
	return artists, nil
}

func (repository *MemoryRepository) GetArtist(_ context.Context, id string) (*Artist, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	index := repository.indexOf(id)
	if index < 0 {
		return nil, dberr.ErrNotFound
	}
	return repository.records[index].Clone(), nil
}

func (repository *MemoryRepository) CreateArtist(_ context.Context, input Input) (*Artist, error) {
	record := input.NewArtist(uuid.New(), stamp(repository.clock()))

	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.records = slices.Insert(repository.records, 0, record)
	return record.Clone(), nil
}

func (repository *MemoryRepository) UpdateArtist(_ context.Context, id string, patch Patch) (*Artist, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.indexOf(id)
	if index < 0 {
		return nil, dberr.ErrNotFound
	}

	record := repository.records[index]
	patch.Apply(record, nextUpdate(repository.clock(), record.UpdatedAt))
	return record.Clone(), nil
}

func (repository *MemoryRepository) DeleteArtist(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.indexOf(id)
	if index < 0 {
		return dberr.ErrNotFound
	}

	repository.records = slices.Delete(repository.records, index, index+1)
	return nil
}

func (repository *MemoryRepository) SearchArtists(_ context.Context, query string) ([]*Artist, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := make([]*Artist, 0)
	for _, record := range Filter(repository.records, query) {
		matched = append(matched, record.Clone())
	}
	return matched, nil
}

// Ping always succeeds; the store has no external dependency.
func (repository *MemoryRepository) Ping(_ context.Context) error {
	return nil
}

// indexOf performs the linear scan. Callers hold the lock.
func (repository *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(repository.records, func(record *Artist) bool {
		return record.ID == id
	})
}
