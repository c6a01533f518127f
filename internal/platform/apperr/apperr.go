// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error type for the artist registry.

Every failure that leaves a repository or the service layer is classified into
one of a small set of kinds so that callers can branch on the kind instead of
inspecting driver or transport errors.

Kinds:

  - CONFIGURATION_ERROR: backend credentials missing or malformed.
  - TRANSPORT_ERROR: the backend could not be reached.
  - BACKEND_ERROR: the backend answered but rejected the operation.
  - NOT_FOUND: the addressed record does not exist.
  - CONFLICT: a uniqueness or check constraint was violated.
  - VALIDATION_ERROR: the payload failed the form rules (see [FieldError]).

Each kind maps onto a fixed HTTP status code for the JSON API.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes.
const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeTransport     = "TRANSPORT_ERROR"
	CodeBackend       = "BACKEND_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// Field failure kinds carried by [FieldError.Kind].
const (
	KindRequired = "required"
	KindFormat   = "format"
	KindInvalid  = "invalid"
)

// AppError is the canonical error type.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (SQL, backend URLs).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches two AppErrors by code, so sentinels such as dberr.ErrNotFound
// compare equal to freshly built errors of the same kind.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Artist") // Returns "Artist not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError] for duplicate or constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Server Errors (5xx)

// Configuration creates a 500 [AppError] for missing or malformed backend settings.
func Configuration(msg string) *AppError {
	return &AppError{
		Code:       CodeConfiguration,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Transport creates a 503 [AppError] for an unreachable backend.
func Transport(action string, cause error) *AppError {
	return &AppError{
		Code:       CodeTransport,
		Message:    fmt.Sprintf("Backend unreachable (%s)", action),
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// Backend creates a 502 [AppError] for an operation the backend rejected.
func Backend(action string, cause error) *AppError {
	return &AppError{
		Code:       CodeBackend,
		Message:    fmt.Sprintf("Backend rejected the request (%s)", action),
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// CodeOf returns the code of the [*AppError] in err's chain, or
// [CodeInternal] for any other non-nil error.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if ae := As(err); ae != nil {
		return ae.Code
	}
	return CodeInternal
}

// Classify guarantees an [*AppError]: unknown errors become [Internal].
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae := As(err); ae != nil {
		return ae
	}
	return Internal(err)
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// Fields flattens validation details into a field → message mapping.
// The first message recorded for a field wins.
func (e *AppError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Details))
	for _, detail := range e.Details {
		if _, exists := fields[detail.Field]; !exists {
			fields[detail.Field] = detail.Message
		}
	}
	return fields
}
