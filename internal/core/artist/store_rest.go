// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/internal/platform/dberr"
)

// restTable is the table the REST backend exposes.
const restTable = "artists"

// RESTRepository talks to the hosted backend's table REST API
// (PostgREST dialect: /rest/v1/<table> with apikey authentication).
type RESTRepository struct {
	endpoint string
	key      string
	client   *http.Client
	clock    func() time.Time
}

// restError is the error body the REST API returns.
type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *restError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

// NewRESTRepository validates the endpoint and access key. A nil client means
// [http.DefaultClient]; a nil clock means [time.Now].
func NewRESTRepository(baseURL, key string, client *http.Client, clock func() time.Time) (*RESTRepository, error) {
	if baseURL == "" || key == "" {
		return nil, apperr.Configuration("Backend URL and access key are required")
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, apperr.Configuration("Backend URL must be an absolute http(s) URL")
	}

	if client == nil {
		client = http.DefaultClient
	}
	if clock == nil {
		clock = time.Now
	}

	return &RESTRepository{
		endpoint: parsed.String() + "/rest/v1/" + restTable,
		key:      key,
		client:   client,
		clock:    clock,
	}, nil
}

func (repository *RESTRepository) ListArtists(context context.Context) ([]*Artist, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", FieldCreatedAt+".desc")

	var artists []*Artist
	if err := repository.do(context, "list_artists", http.MethodGet, params, nil, &artists); err != nil {
		return nil, err
	}
	return normalizeList(artists), nil
}

func (repository *RESTRepository) GetArtist(context context.Context, id string) (*Artist, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set(FieldID, "eq."+id)
	params.Set("limit", "1")

	var artists []*Artist
	if err := repository.do(context, "get_artist", http.MethodGet, params, nil, &artists); err != nil {
		return nil, err
	}
	return single(artists)
}

func (repository *RESTRepository) CreateArtist(context context.Context, input Input) (*Artist, error) {
	now := stamp(repository.clock())

	row := map[string]any{
		FieldNickname:  strings.TrimSpace(input.Nickname),
		FieldCreatedAt: now,
		FieldUpdatedAt: now,
	}
	for name, value := range input.Values() {
		row[name] = value
	}

	var artists []*Artist
	if err := repository.do(context, "create_artist", http.MethodPost, nil, row, &artists); err != nil {
		return nil, err
	}
	return single(artists)
}

func (repository *RESTRepository) UpdateArtist(context context.Context, id string, patch Patch) (*Artist, error) {
	row := map[string]any{FieldUpdatedAt: stamp(repository.clock())}
	for name, value := range patch.Changes() {
		row[name] = value
	}

	params := url.Values{}
	params.Set(FieldID, "eq."+id)

	var artists []*Artist
	if err := repository.do(context, "update_artist", http.MethodPatch, params, row, &artists); err != nil {
		return nil, err
	}
	return single(artists)
}

// DeleteArtist asks for the deleted row back so an absent id is reported as
// NOT_FOUND instead of a silent no-op.
func (repository *RESTRepository) DeleteArtist(context context.Context, id string) error {
	params := url.Values{}
	params.Set(FieldID, "eq."+id)

	var artists []*Artist
	if err := repository.do(context, "delete_artist", http.MethodDelete, params, nil, &artists); err != nil {
		return err
	}
	if len(artists) == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SearchArtists matches literally, like the other backends. The REST dialect
// rewrites every '*' in an ilike value to '%' with no escape, so a literal '*'
// is sent as the single-character wildcard and the rows are narrowed again here.
func (repository *RESTRepository) SearchArtists(context context.Context, query string) ([]*Artist, error) {
	pattern := quoteFilterValue("*" + restLikePattern(query) + "*")

	params := url.Values{}
	params.Set("select", "*")
	params.Set("or", fmt.Sprintf("(%s.ilike.%s,%s.ilike.%s,%s.ilike.%s)",
		FieldNickname, pattern, FieldType, pattern, FieldEmail, pattern))
	params.Set("order", FieldCreatedAt+".desc")

	var artists []*Artist
	if err := repository.do(context, "search_artists", http.MethodGet, params, nil, &artists); err != nil {
		return nil, err
	}

	found := normalizeList(artists)
	if !strings.Contains(query, "*") {
		return found, nil
	}

	needle := strings.ToLower(query)
	literal := make([]*Artist, 0, len(found))
	for _, a := range found {
		if matches(a, needle) {
			literal = append(literal, a)
		}
	}
	return literal, nil
}

// restLikePattern escapes LIKE wildcards and replaces '*' with '_'.
func restLikePattern(query string) string {
	return strings.ReplaceAll(EscapeLike(query), "*", "_")
}

// Ping issues the cheapest possible read to prove the endpoint and key work.
func (repository *RESTRepository) Ping(context context.Context) error {
	params := url.Values{}
	params.Set("select", FieldID)
	params.Set("limit", "1")

	var discard []json.RawMessage
	return repository.do(context, "ping", http.MethodGet, params, nil, &discard)
}

// do performs one request and decodes a 2xx body into out.
func (repository *RESTRepository) do(ctx context.Context, action, method string, params url.Values, body any, out any) error {
	target := repository.endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("%s: encode body: %w", action, err))
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: build request: %w", action, err))
	}

	request.Header.Set("apikey", repository.key)
	request.Header.Set("Authorization", "Bearer "+repository.key)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		request.Header.Set("Prefer", "return=representation")
	}

	response, err := repository.client.Do(request)
	if err != nil {
		return apperr.Transport(action, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.Transport(action, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return classifyREST(action, response.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Backend(action, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// classifyREST maps a non-2xx answer onto the error taxonomy.
func classifyREST(action string, status int, raw []byte) error {
	cause := &restError{}
	if err := json.Unmarshal(raw, cause); err != nil || cause.Message == "" {
		cause.Message = strings.TrimSpace(string(raw))
	}
	cause.Code = strings.TrimSpace(cause.Code)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		ae := apperr.Configuration("Backend rejected the access key")
		ae.Cause = cause
		return ae
	case status == http.StatusConflict:
		ae := apperr.Conflict("Artist already exists")
		ae.Cause = cause
		return ae
	case cause.Code == "22P02":
		// Malformed id literal: nothing can match it.
		return dberr.ErrNotFound
	case cause.Code == "23514" || cause.Code == "23502":
		ae := apperr.Conflict("Artist violates a table constraint")
		ae.Cause = cause
		return ae
	case status >= 500 && status != http.StatusInternalServerError:
		// Gateway and availability failures in front of the database.
		return apperr.Transport(action, cause)
	default:
		return apperr.Backend(action, cause)
	}
}

// quoteFilterValue wraps a value in double quotes for the or=(...) syntax,
// where commas and parentheses are otherwise reserved.
func quoteFilterValue(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	return `"` + escaped + `"`
}

func single(artists []*Artist) (*Artist, error) {
	if len(artists) == 0 || artists[0] == nil {
		return nil, dberr.ErrNotFound
	}
	a := artists[0]
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func normalizeList(artists []*Artist) []*Artist {
	normalized := make([]*Artist, 0, len(artists))
	for _, a := range artists {
		if a == nil {
			continue
		}
		a.CreatedAt = a.CreatedAt.UTC()
		a.UpdatedAt = a.UpdatedAt.UTC()
		normalized = append(normalized, a)
	}
	return normalized
}
