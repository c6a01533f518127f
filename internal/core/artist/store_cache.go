// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/artists/internal/platform/constants"
)

// CachedRepository puts a Redis read-through cache in front of another
// repository. The full list and single records are cached; searches are not.
//
// # Consistency
//
// Every write bumps a generation counter and drops the affected keys in one
// transaction, after the backend confirms the write. A read that missed the
// cache snapshots the generation before loading and only fills the key if the
// generation is unchanged, so a load that raced a write is never cached.
//
// Redis failures never fail an operation: they are logged and the call falls
// through to the wrapped repository.
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a cache whose entries expire after ttl.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (repository *CachedRepository) ListArtists(context context.Context) ([]*Artist, error) {
	var cached []*Artist
	if repository.load(context, constants.RedisKeyArtistList, &cached) {
		return cached, nil
	}

	generation, ok := repository.generation(context)

	artists, err := repository.next.ListArtists(context)
	if err != nil {
		return nil, err
	}

	if ok {
		repository.store(context, generation, constants.RedisKeyArtistList, artists)
	}
	return artists, nil
}

func (repository *CachedRepository) GetArtist(context context.Context, id string) (*Artist, error) {
	key := constants.RedisPrefixArtistByID + id

	var cached Artist
	if repository.load(context, key, &cached) {
		return &cached, nil
	}

	generation, ok := repository.generation(context)

	a, err := repository.next.GetArtist(context, id)
	if err != nil {
		return nil, err
	}

	if ok {
		repository.store(context, generation, key, a)
	}
	return a, nil
}

func (repository *CachedRepository) CreateArtist(context context.Context, input Input) (*Artist, error) {
	a, err := repository.next.CreateArtist(context, input)
	if err != nil {
		return nil, err
	}

	repository.invalidate(context, constants.RedisKeyArtistList)
	return a, nil
}

func (repository *CachedRepository) UpdateArtist(context context.Context, id string, patch Patch) (*Artist, error) {
	a, err := repository.next.UpdateArtist(context, id, patch)
	if err != nil {
		return nil, err
	}

	repository.invalidate(context, constants.RedisKeyArtistList, constants.RedisPrefixArtistByID+id)
	return a, nil
}

func (repository *CachedRepository) DeleteArtist(context context.Context, id string) error {
	if err := repository.next.DeleteArtist(context, id); err != nil {
		return err
	}

	repository.invalidate(context, constants.RedisKeyArtistList, constants.RedisPrefixArtistByID+id)
	return nil
}

func (repository *CachedRepository) SearchArtists(context context.Context, query string) ([]*Artist, error) {
	return repository.next.SearchArtists(context, query)
}

// Ping checks the wrapped backend only; a cache outage degrades latency, not
// availability. Use [CachedRepository.PingCache] for the cache itself.
func (repository *CachedRepository) Ping(context context.Context) error {
	if pinger, ok := repository.next.(Pinger); ok {
		return pinger.Ping(context)
	}
	return nil
}

// PingCache verifies that Redis answers.
func (repository *CachedRepository) PingCache(context context.Context) error {
	return repository.client.Ping(context).Err()
}

// load decodes key into target and reports a hit.
func (repository *CachedRepository) load(ctx context.Context, key string, target any) bool {
	raw, err := repository.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			repository.logger.WarnContext(ctx, "artist_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		}
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		repository.logger.WarnContext(ctx, "artist_cache_decode_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

// generation reads the invalidation counter. A missing counter is zero.
func (repository *CachedRepository) generation(ctx context.Context) (int64, bool) {
	generation, err := repository.client.Get(ctx, constants.RedisKeyArtistGeneration).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		repository.logger.WarnContext(ctx, "artist_cache_read_failed",
			slog.String("key", constants.RedisKeyArtistGeneration), slog.Any("error", err))
		return 0, false
	}
	return generation, true
}

// store writes value under key only while the counter still equals generation.
func (repository *CachedRepository) store(ctx context.Context, generation int64, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	err = repository.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, constants.RedisKeyArtistGeneration).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleLoad
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, repository.ttl)
			return nil
		})
		return err
	}, constants.RedisKeyArtistGeneration)

	switch {
	case err == nil:
	case errors.Is(err, errStaleLoad), errors.Is(err, redis.TxFailedErr):
		repository.logger.DebugContext(ctx, "artist_cache_fill_skipped", slog.String("key", key))
	default:
		repository.logger.WarnContext(ctx, "artist_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (repository *CachedRepository) invalidate(ctx context.Context, keys ...string) {
	_, err := repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, constants.RedisKeyArtistGeneration)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		repository.logger.WarnContext(ctx, "artist_cache_invalidate_failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}

// errStaleLoad marks a fill abandoned because a write landed during the load.
var errStaleLoad = errors.New("artist cache: generation moved during load")
