// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artists/internal/core/artist"
	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/pkg/pointer"
)

/*
TestValidateInput walks the form scenarios and asserts which fields fail.
*/
func TestValidateInput(t *testing.T) {
	tests := []struct {
		name   string
		input  artist.Input
		failed []string
	}{
		{"all_empty", artist.Input{}, []string{"nickname"}},
		{"blank_nickname", artist.Input{Nickname: "   "}, []string{"nickname"}},
		{"bad_email", artist.Input{Nickname: "A", Email: "not-an-email"}, []string{"email"}},
		{"email_without_tld", artist.Input{Nickname: "A", Email: "a@b"}, []string{"email"}},
		{"phone_too_long", artist.Input{Nickname: "A", Phone: "12345678901234567"}, []string{"phone"}},
		{"phone_leading_zero", artist.Input{Nickname: "A", Phone: "0123"}, []string{"phone"}},
		{"valid_international_phone", artist.Input{Nickname: "A", Phone: "+79991234567"}, nil},
		{"phone_with_spaces", artist.Input{Nickname: "A", Phone: "+7 999 123 45 67"}, nil},
		{"nickname_too_long", artist.Input{Nickname: strings.Repeat("я", 201)}, []string{"nickname"}},
		{"everything_wrong", artist.Input{Email: "x@", Phone: "abc"}, []string{"nickname", "email", "phone"}},
		{
			"complete",
			artist.Input{Nickname: "Luna", Type: "DJ", Instagram: "@luna", Telegram: "@l", Email: "l@x.io", Phone: "15551234"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := artist.ValidateInput(tt.input).Fields()

			failed := make([]string, 0, len(fields))
			for field := range fields {
				failed = append(failed, field)
			}
			assert.ElementsMatch(t, tt.failed, failed)
		})
	}
}

/*
TestValidateInput_Kinds checks that required and format failures are told apart.
*/
func TestValidateInput_Kinds(t *testing.T) {
	err := artist.ValidateInput(artist.Input{Email: "bad"}).Err()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 2)

	assert.Equal(t, "nickname", ae.Details[0].Field)
	assert.Equal(t, apperr.KindRequired, ae.Details[0].Kind)
	assert.Equal(t, "email", ae.Details[1].Field)
	assert.Equal(t, apperr.KindFormat, ae.Details[1].Kind)
}

/*
TestValidatePatch only checks the fields present in the patch.
*/
func TestValidatePatch(t *testing.T) {
	tests := []struct {
		name   string
		patch  artist.Patch
		failed []string
	}{
		{"empty_patch", artist.Patch{}, nil},
		{"cleared_nickname", artist.Patch{Nickname: pointer.To(" ")}, []string{"nickname"}},
		{"cleared_email_is_allowed", artist.Patch{Email: pointer.To("")}, nil},
		{"bad_phone", artist.Patch{Phone: pointer.To("+0")}, []string{"phone"}},
		{"rename", artist.Patch{Nickname: pointer.To("New name")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := artist.ValidatePatch(tt.patch).Fields()

			failed := make([]string, 0, len(fields))
			for field := range fields {
				failed = append(failed, field)
			}
			assert.ElementsMatch(t, tt.failed, failed)
		})
	}
}

/*
TestFieldErrors extracts the mapping from validation errors only.
*/
func TestFieldErrors(t *testing.T) {
	err := artist.ValidateInput(artist.Input{}).Err()
	assert.Equal(t, map[string]string{"nickname": "This field is required"}, artist.FieldErrors(err))

	assert.Empty(t, artist.FieldErrors(nil))
	assert.Empty(t, artist.FieldErrors(apperr.NotFound("Artist")))
}
