// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/artists/internal/platform/apperr"
)

// SQLSTATE classes and codes that need a dedicated mapping.
const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
	sqlStateNotNull         = "23502"
	sqlStateInvalidText     = "22P02" // e.g. a malformed uuid in WHERE id = $1
	sqlStateClassConnection = "08"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Artist")
)

// Wrap inspects a database error and classifies it as an [apperr.AppError].
// It hides internal database details from the client while keeping the cause
// for logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Server-side rejections carry a SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == sqlStateUniqueViolation:
			return apperr.Conflict("Artist already exists")
		case pgErr.Code == sqlStateCheckViolation, pgErr.Code == sqlStateNotNull:
			return apperr.Conflict("Artist violates a table constraint")
		case pgErr.Code == sqlStateInvalidText:
			return ErrNotFound
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == sqlStateClassConnection:
			return apperr.Transport(action, err)
		default:
			return apperr.Backend(action, err)
		}
	}

	// 3. Anything that never reached the server is a transport failure
	if isTransport(err) {
		return apperr.Transport(action, err)
	}

	return apperr.Backend(action, err)
}

// isTransport reports whether err stems from the network or connection layer.
func isTransport(err error) bool {
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
