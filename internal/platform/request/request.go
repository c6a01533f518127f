// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/internal/platform/validate"
)

// maxBodyBytes caps request bodies; an artist record is a handful of short strings.
const maxBodyBytes = 64 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.
Unknown fields are rejected so that typos in field names surface as errors
instead of silently dropped values.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter and rejects blank values.
*/
func ID(request *http.Request, name string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(request, name))
	if id == "" {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   name,
			Kind:    apperr.KindRequired,
			Message: "This field is required",
		})
	}
	return id, nil
}

/*
Query retrieves a raw query-string value. Whitespace is preserved because it is
significant for substring search.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}
