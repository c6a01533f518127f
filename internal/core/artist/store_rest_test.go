// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artists/internal/core/artist"
	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/pkg/pointer"
)

const restKey = "anon-key"

const lunaRow = `{
	"id": "01944f5a-6c00-7000-8000-000000000001",
	"nickname": "Luna Vega",
	"type": "DJ",
	"instagram": null,
	"telegram": null,
	"email": "luna@example.com",
	"phone": null,
	"created_at": "2025-01-10T15:00:00+03:00",
	"updated_at": "2025-01-10T15:00:00+03:00"
}`

// newRESTRepository starts a fake table API answering with handler.
func newRESTRepository(t *testing.T, handler http.HandlerFunc) *artist.RESTRepository {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/rest/v1/artists", request.URL.Path)
		assert.Equal(t, restKey, request.Header.Get("apikey"))
		assert.Equal(t, "Bearer "+restKey, request.Header.Get("Authorization"))
		handler(writer, request)
	}))
	t.Cleanup(server.Close)

	repo, err := artist.NewRESTRepository(server.URL+"/", restKey, server.Client(), frozenClock)
	require.NoError(t, err)
	return repo
}

func writeJSON(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = io.WriteString(writer, body)
}

/*
TestNewRESTRepository_Configuration rejects missing or malformed settings.
*/
func TestNewRESTRepository_Configuration(t *testing.T) {
	tests := []struct {
		name string
		url  string
		key  string
	}{
		{"missing_url", "", restKey},
		{"missing_key", "https://demo.supabase.co", ""},
		{"relative_url", "demo.supabase.co", restKey},
		{"wrong_scheme", "ftp://demo.supabase.co", restKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := artist.NewRESTRepository(tt.url, tt.key, nil, nil)
			assert.Nil(t, repo)
			assert.Equal(t, apperr.CodeConfiguration, apperr.CodeOf(err))
		})
	}
}

/*
TestRESTRepository_ListArtists checks ordering parameters and UTC normalization.
*/
func TestRESTRepository_ListArtists(t *testing.T) {
	repo := newRESTRepository(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "created_at.desc", request.URL.Query().Get("order"))
		writeJSON(writer, http.StatusOK, "["+lunaRow+"]")
	})

	artists, err := repo.ListArtists(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Luna Vega", artists[0].Nickname)
	assert.Nil(t, artists[0].Phone)
	assert.Equal(t, time.UTC, artists[0].CreatedAt.Location())
	assert.Equal(t, 12, artists[0].CreatedAt.Hour())
}

/*
TestRESTRepository_GetArtist returns NOT_FOUND for an empty result set.
*/
func TestRESTRepository_GetArtist(t *testing.T) {
	repo := newRESTRepository(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("id") == "eq.01944f5a-6c00-7000-8000-000000000001" {
			writeJSON(writer, http.StatusOK, "["+lunaRow+"]")
			return
		}
		writeJSON(writer, http.StatusOK, "[]")
	})

	found, err := repo.GetArtist(context.Background(), "01944f5a-6c00-7000-8000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "Luna Vega", found.Nickname)

	missing, err := repo.GetArtist(context.Background(), "01944f5a-6c00-7000-8000-00000000ffff")
	assert.Nil(t, missing)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestRESTRepository_CreateArtist inspects the inserted row.
*/
func TestRESTRepository_CreateArtist(t *testing.T) {
	repo := newRESTRepository(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "return=representation", request.Header.Get("Prefer"))

		var row map[string]any
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&row))
		assert.Equal(t, "Luna Vega", row["nickname"])
		assert.Equal(t, "DJ", row["type"])
		assert.Nil(t, row["phone"])
		assert.Equal(t, "2025-06-01T12:00:00Z", row["created_at"])
		assert.Equal(t, row["created_at"], row["updated_at"])
		assert.NotContains(t, row, "id")

		writeJSON(writer, http.StatusCreated, "["+lunaRow+"]")
	})

	created, err := repo.CreateArtist(context.Background(), artist.Input{Nickname: " Luna Vega ", Type: "DJ"})
	require.NoError(t, err)
	assert.Equal(t, "01944f5a-6c00-7000-8000-000000000001", created.ID)
}

/*
TestRESTRepository_UpdateArtist sends only the changed fields plus updated_at.
*/
func TestRESTRepository_UpdateArtist(t *testing.T) {
	repo := newRESTRepository(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "eq.abc", request.URL.Query().Get("id"))

		var row map[string]any
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&row))
		assert.Len(t, row, 2)
		assert.Contains(t, row, "updated_at")
		assert.Contains(t, row, "email")
		assert.Nil(t, row["email"])

		writeJSON(writer, http.StatusOK, "[]")
	})

	updated, err := repo.UpdateArtist(context.Background(), "abc", artist.Patch{Email: pointer.To("")})
	assert.Nil(t, updated)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestRESTRepository_DeleteArtist distinguishes deleted and absent rows.
*/
func TestRESTRepository_DeleteArtist(t *testing.T) {
	repo := newRESTRepository(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		if request.URL.Query().Get("id") == "eq.present" {
			writeJSON(writer, http.StatusOK, "["+lunaRow+"]")
			return
		}
		writeJSON(writer, http.StatusOK, "[]")
	})

	assert.NoError(t, repo.DeleteArtist(context.Background(), "present"))
	assert.True(t, apperr.IsNotFound(repo.DeleteArtist(context.Background(), "absent")))
}

/*
TestRESTRepository_SearchArtists checks the quoted or-filter.
*/
func TestRESTRepository_SearchArtists(t *testing.T) {
	repo := newRESTRepository(t, func(writer http.ResponseWriter, request *http.Request) {
		want := `(nickname.ilike."*a,b\\_c*",type.ilike."*a,b\\_c*",email.ilike."*a,b\\_c*")`
		assert.Equal(t, want, request.URL.Query().Get("or"))
		writeJSON(writer, http.StatusOK, "[]")
	})

	found, err := repo.SearchArtists(context.Background(), "a,b_c")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Empty(t, found)
}

/*
TestRESTRepository_SearchLiteralStar keeps '*' literal even though the table
API treats it as a wildcard.
*/
func TestRESTRepository_SearchLiteralStar(t *testing.T) {
	repo := newRESTRepository(t, func(writer http.ResponseWriter, request *http.Request) {
		want := `(nickname.ilike."*a_b*",type.ilike."*a_b*",email.ilike."*a_b*")`
		assert.Equal(t, want, request.URL.Query().Get("or"))
		writeJSON(writer, http.StatusOK, `[
			{"id":"1","nickname":"A*B Crew","created_at":"2025-01-10T12:00:00Z","updated_at":"2025-01-10T12:00:00Z"},
			{"id":"2","nickname":"Axb","created_at":"2025-01-09T12:00:00Z","updated_at":"2025-01-09T12:00:00Z"}
		]`)
	})

	found, err := repo.SearchArtists(context.Background(), "a*b")
	require.NoError(t, err)
	assert.Equal(t, []string{"A*B Crew"}, nicknames(found))
}

/*
TestRESTRepository_ContextDeadline aborts a slow request when the caller's
context expires.
*/
func TestRESTRepository_ContextDeadline(t *testing.T) {
	repo := newRESTRepository(t, func(_ http.ResponseWriter, request *http.Request) {
		<-request.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	artists, err := repo.ListArtists(ctx)
	assert.Nil(t, artists)
	assert.Equal(t, apperr.CodeTransport, apperr.CodeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

/*
TestRESTRepository_Errors maps failure answers onto error codes.
*/
func TestRESTRepository_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"bad_key", http.StatusUnauthorized, `{"message":"Invalid API key"}`, apperr.CodeConfiguration},
		{"duplicate", http.StatusConflict, `{"code":"23505","message":"duplicate key"}`, apperr.CodeConflict},
		{"malformed_id", http.StatusBadRequest, `{"code":"22P02","message":"invalid input syntax for type uuid"}`, apperr.CodeNotFound},
		{"check_violation", http.StatusBadRequest, `{"code":"23514","message":"violates check"}`, apperr.CodeConflict},
		{"gateway", http.StatusBadGateway, `upstream down`, apperr.CodeTransport},
		{"gateway_html", http.StatusServiceUnavailable, `<html><body>503</body></html>`, apperr.CodeTransport},
		{"forbidden", http.StatusForbidden, `{"code":"42501","message":"permission denied"}`, apperr.CodeConfiguration},
		{"server_error", http.StatusInternalServerError, `{"message":"boom"}`, apperr.CodeBackend},
		{"not_json", http.StatusOK, `<html>`, apperr.CodeBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRESTRepository(t, func(writer http.ResponseWriter, _ *http.Request) {
				writeJSON(writer, tt.status, tt.body)
			})

			artists, err := repo.ListArtists(context.Background())
			assert.Nil(t, artists)
			assert.Equal(t, tt.code, apperr.CodeOf(err))
		})
	}
}

/*
TestRESTRepository_Unreachable reports a transport failure.
*/
func TestRESTRepository_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	repo, err := artist.NewRESTRepository(url, restKey, nil, nil)
	require.NoError(t, err)

	_, err = repo.GetArtist(context.Background(), "x")
	assert.Equal(t, apperr.CodeTransport, apperr.CodeOf(err))
}
