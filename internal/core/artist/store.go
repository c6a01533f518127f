// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import "context"

// Repository is the backend strategy behind the service. Exactly one
// implementation is chosen at startup and injected; callers never inspect
// which one they hold.
//
// Lists are ordered newest CreatedAt first. Errors are [apperr.AppError]
// values; a missing record is reported as NOT_FOUND.
type Repository interface {
	ListArtists(context context.Context) ([]*Artist, error)
	GetArtist(context context.Context, id string) (*Artist, error)
	CreateArtist(context context.Context, input Input) (*Artist, error)
	UpdateArtist(context context.Context, id string, patch Patch) (*Artist, error)
	DeleteArtist(context context.Context, id string) error
	SearchArtists(context context.Context, query string) ([]*Artist, error)
}

// Pinger is implemented by repositories that can report backend health.
type Pinger interface {
	Ping(context context.Context) error
}
