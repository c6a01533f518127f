// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"strings"

	"github.com/taibuivan/artists/internal/platform/apperr"
	"github.com/taibuivan/artists/internal/platform/validate"
)

// maxNicknameLen bounds the display name.
const maxNicknameLen = 200

// ValidateInput runs the form rules against a creation payload.
func ValidateInput(in Input) *validate.Validator {
	in = in.Normalize()

	validator := &validate.Validator{}
	validator.Required(FieldNickname, in.Nickname).MaxLen(FieldNickname, in.Nickname, maxNicknameLen)
	validator.Email(FieldEmail, in.Email)
	validator.Phone(FieldPhone, in.Phone)

	return validator
}

// ValidatePatch runs the form rules against the fields present in an update.
func ValidatePatch(p Patch) *validate.Validator {
	validator := &validate.Validator{}

	if p.Nickname != nil {
		nickname := strings.TrimSpace(*p.Nickname)
		validator.Required(FieldNickname, nickname).MaxLen(FieldNickname, nickname, maxNicknameLen)
	}
	if p.Email != nil {
		validator.Email(FieldEmail, strings.TrimSpace(*p.Email))
	}
	if p.Phone != nil {
		validator.Phone(FieldPhone, strings.TrimSpace(*p.Phone))
	}

	return validator
}

// FieldErrors returns the field → message mapping carried by a validation
// error, or an empty mapping for nil and non-validation errors.
func FieldErrors(err error) map[string]string {
	ae := apperr.As(err)
	if ae == nil || ae.Code != apperr.CodeValidation {
		return map[string]string{}
	}
	return ae.Fields()
}
