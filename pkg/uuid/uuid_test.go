// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artists/pkg/uuid"
)

/*
TestNew verifies that generated ids are version 7 and distinct.
*/
func TestNew(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := uuid.New()

		parsed, err := googleuuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, googleuuid.Version(7), parsed.Version())

		_, duplicate := seen[id]
		assert.False(t, duplicate)
		seen[id] = struct{}{}
	}
}

/*
TestValid checks accepted and rejected inputs.
*/
func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid(uuid.New()))
	assert.True(t, uuid.Valid("01944f5a-6c00-7000-8000-000000000001"))
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid(""))
}
