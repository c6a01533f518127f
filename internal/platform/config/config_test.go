// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artists/internal/platform/config"
)

/*
TestParse_Defaults verifies the defaults applied to an empty environment.
*/
func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.BackendAuto, cfg.Backend)
	assert.Equal(t, "ru", cfg.CollationLocale)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.HasREST())
	assert.False(t, cfg.HasDatabase())
}

/*
TestParse_Backend checks the BACKEND values accepted by the parser.
*/
func TestParse_Backend(t *testing.T) {
	t.Setenv("BACKEND", "memory")
	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Backend)

	t.Setenv("BACKEND", "firebase")
	_, err = config.Parse()
	assert.Error(t, err)
}

/*
TestConfig_HasREST requires both parameters and an absolute http(s) endpoint.
*/
func TestConfig_HasREST(t *testing.T) {
	tests := []struct {
		name string
		url  string
		key  string
		want bool
	}{
		{"complete", "https://abc.supabase.co", "anon", true},
		{"missing_key", "https://abc.supabase.co", "", false},
		{"missing_url", "", "anon", false},
		{"relative_url", "abc.supabase.co", "anon", false},
		{"wrong_scheme", "ftp://abc.supabase.co", "anon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{BackendURL: tt.url, BackendKey: tt.key}
			assert.Equal(t, tt.want, cfg.HasREST())
		})
	}
}

/*
TestParse_ExtraOrigins verifies comma-separated list parsing.
*/
func TestParse_ExtraOrigins(t *testing.T) {
	t.Setenv("EXTRA_ORIGINS", "https://web.telegram.org,https://example.app")
	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://web.telegram.org", "https://example.app"}, cfg.ExtraOrigins)
}
