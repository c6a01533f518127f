// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/artists/internal/core/artist"
	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/pkg/pointer"
)

// failingRepository answers every call with err.
type failingRepository struct {
	err error
}

func (r failingRepository) ListArtists(context.Context) ([]*artist.Artist, error) { return nil, r.err }
func (r failingRepository) GetArtist(context.Context, string) (*artist.Artist, error) {
	return nil, r.err
}
func (r failingRepository) CreateArtist(context.Context, artist.Input) (*artist.Artist, error) {
	return nil, r.err
}
func (r failingRepository) UpdateArtist(context.Context, string, artist.Patch) (*artist.Artist, error) {
	return nil, r.err
}
func (r failingRepository) DeleteArtist(context.Context, string) error { return r.err }
func (r failingRepository) SearchArtists(context.Context, string) ([]*artist.Artist, error) {
	return nil, r.err
}

// gatedRepository holds creates until release is closed and counts them.
type gatedRepository struct {
	*artist.MemoryRepository
	release chan struct{}
	creates atomic.Int32
}

func (r *gatedRepository) CreateArtist(ctx context.Context, input artist.Input) (*artist.Artist, error) {
	r.creates.Add(1)
	<-r.release
	return r.MemoryRepository.CreateArtist(ctx, input)
}

func newService(t *testing.T, repo artist.Repository) *artist.Service {
	t.Helper()
	sorter, err := artist.NewSorter("ru")
	require.NoError(t, err)
	return artist.NewService(repo, sorter, discardLogger())
}

/*
TestService_Sentinels checks that every failing operation returns its
sentinel value together with the classified error.
*/
func TestService_Sentinels(t *testing.T) {
	ctx := context.Background()
	service := newService(t, failingRepository{err: apperr.Transport("test", errors.New("connection refused"))})

	artists, err := service.ListArtists(ctx)
	require.NotNil(t, artists)
	assert.Empty(t, artists)
	assert.Equal(t, apperr.CodeTransport, apperr.CodeOf(err))

	found, err := service.SearchArtists(ctx, "x")
	require.NotNil(t, found)
	assert.Empty(t, found)
	assert.Error(t, err)

	one, err := service.GetArtist(ctx, "id")
	assert.Nil(t, one)
	assert.Error(t, err)

	created, err := service.CreateArtist(ctx, artist.Input{Nickname: "A"})
	assert.Nil(t, created)
	assert.Equal(t, apperr.CodeTransport, apperr.CodeOf(err))

	updated, err := service.UpdateArtist(ctx, "id", artist.Patch{Nickname: pointer.To("B")})
	assert.Nil(t, updated)
	assert.Error(t, err)

	assert.Error(t, service.DeleteArtist(ctx, "id"))

	listing, err := service.Browse(ctx, "", artist.SortByNickname)
	assert.Error(t, err)
	assert.NotNil(t, listing.Artists)
	assert.Zero(t, listing.Total)
}

/*
TestService_UnknownErrorsBecomeInternal ensures raw errors are classified.
*/
func TestService_UnknownErrorsBecomeInternal(t *testing.T) {
	service := newService(t, failingRepository{err: errors.New("boom")})

	_, err := service.ListArtists(context.Background())
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}

/*
TestService_CreateArtist_Validation rejects invalid payloads before the backend.
*/
func TestService_CreateArtist_Validation(t *testing.T) {
	repo := &gatedRepository{MemoryRepository: artist.NewMemoryRepository(nil, nil), release: make(chan struct{})}
	service := newService(t, repo)

	created, err := service.CreateArtist(context.Background(), artist.Input{Nickname: " ", Email: "bad"})
	assert.Nil(t, created)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
	assert.Equal(t, map[string]string{
		"nickname": "This field is required",
		"email":    "Must be a valid email address",
	}, artist.FieldErrors(err))
	assert.Zero(t, repo.creates.Load())
}

/*
TestService_CreateArtist_CollapsesDuplicates submits the same payload
concurrently and expects a single backend insert.
*/
func TestService_CreateArtist_CollapsesDuplicates(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	repo := &gatedRepository{MemoryRepository: artist.NewMemoryRepository(nil, nil), release: make(chan struct{})}
	service := newService(t, repo)

	const submissions = 5
	results := make([]*artist.Artist, submissions)

	var wg sync.WaitGroup
	for i := range submissions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := service.CreateArtist(context.Background(), artist.Input{Nickname: " Echo "})
			assert.NoError(t, err)
			results[i] = created
		}()
	}

	// Let every goroutine join the in-flight call before releasing it.
	assert.Eventually(t, func() bool { return repo.creates.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.creates.Load())

	artists, err := service.ListArtists(context.Background())
	require.NoError(t, err)
	assert.Len(t, artists, 1)

	for _, created := range results {
		require.NotNil(t, created)
		assert.Equal(t, artists[0].ID, created.ID)
	}
}

/*
TestService_CreateArtist_SurvivesCancellation verifies that a started create
completes even when its caller's context is cancelled.
*/
func TestService_CreateArtist_SurvivesCancellation(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	repo := &gatedRepository{MemoryRepository: artist.NewMemoryRepository(nil, nil), release: make(chan struct{})}
	service := newService(t, repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = service.CreateArtist(ctx, artist.Input{Nickname: "Late"})
	}()

	assert.Eventually(t, func() bool { return repo.creates.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	close(repo.release)
	<-done

	artists, err := repo.ListArtists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Late"}, nicknames(artists))
}

/*
TestService_UpdateAndDelete covers the happy path and the not-found path.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	service := newService(t, artist.NewMemoryRepository(artist.SampleArtists(), nil))
	id := artist.SampleArtists()[2].ID

	updated, err := service.UpdateArtist(ctx, id, artist.Patch{Phone: pointer.To("+1 415 555 0199")})
	require.NoError(t, err)
	assert.Equal(t, "+1 415 555 0199", *updated.Phone)

	invalid, err := service.UpdateArtist(ctx, id, artist.Patch{Phone: pointer.To("phone")})
	assert.Nil(t, invalid)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	require.NoError(t, service.DeleteArtist(ctx, id))
	assert.True(t, apperr.IsNotFound(service.DeleteArtist(ctx, id)))

	missing, err := service.GetArtist(ctx, "  ")
	assert.Nil(t, missing)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Browse derives the view and keeps the total of the full set.
*/
func TestService_Browse(t *testing.T) {
	service := newService(t, artist.NewMemoryRepository(artist.SampleArtists(), nil))

	listing, err := service.Browse(context.Background(), "pro", artist.SortByNickname)
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Total)
	assert.Equal(t, []string{"Basso Profondo", "Kite"}, nicknames(listing.Artists))
	assert.Equal(t, artist.SortByNickname, listing.Sort)
}

/*
TestService_SearchArtists falls back to the full list for an empty query.
*/
func TestService_SearchArtists(t *testing.T) {
	service := newService(t, artist.NewMemoryRepository(artist.SampleArtists(), nil))

	all, err := service.SearchArtists(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := service.SearchArtists(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"Luna Vega", "Basso Profondo"}, nicknames(found))
}
