// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/artists/internal/platform/ctxutil"
)

/*
TestRequestID round-trips the correlation ID.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "01944f5a-6c00-7000-8000-0000000000aa")
	assert.Equal(t, "01944f5a-6c00-7000-8000-0000000000aa", ctxutil.GetRequestID(ctx))
}

/*
TestGetLogger checks the lookup order: context, fallback, default.
*/
func TestGetLogger(t *testing.T) {
	requestLogger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		fallback []*slog.Logger
		want     *slog.Logger
	}{
		{"nothing_set", context.Background(), nil, slog.Default()},
		{"fallback_used", context.Background(), []*slog.Logger{nil, fallback}, fallback},
		{"context_wins", ctxutil.WithLogger(context.Background(), requestLogger), []*slog.Logger{fallback}, requestLogger},
		{"nil_in_context_ignored", ctxutil.WithLogger(context.Background(), nil), []*slog.Logger{fallback}, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, ctxutil.GetLogger(tt.ctx, tt.fallback...))
		})
	}
}
