// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer and by the form validation
// endpoint. It ensures that business logic only operates on semantically
// valid data.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/artists/internal/platform/apperr"
)

var (
	// emailRegex accepts local@domain.tld shaped addresses: no whitespace
	// (Unicode separators and BOM included), exactly one '@', and at least one
	// dot-separated label after it.
	emailRegex = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)
	// phoneRegex accepts an optional leading '+' and 1-16 digits, first non-zero.
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, apperr.KindRequired, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, apperr.KindFormat, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Email fails if a non-empty value is not shaped like local@domain.tld.
// Empty values pass; pair with [Validator.Required] when the field is mandatory.
func (v *Validator) Email(field, value string) *Validator {
	if value != "" && !emailRegex.MatchString(value) {
		v.add(field, apperr.KindFormat, "Must be a valid email address")
	}
	return v
}

// Phone fails if a non-empty value, once all whitespace is removed, is not an
// optional '+' followed by 1 to 16 digits with a non-zero first digit.
func (v *Validator) Phone(field, value string) *Validator {
	if value != "" && !phoneRegex.MatchString(StripSpace(value)) {
		v.add(field, apperr.KindFormat, "Must be a valid phone number")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, apperr.KindInvalid, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("nickname", clearing, apperr.KindRequired, "Nickname cannot be cleared")
func (v *Validator) Custom(field string, failed bool, kind, message string) *Validator {
	if failed {
		v.add(field, kind, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// Fields returns the failures as a field → message mapping. An empty map
// means every rule passed.
func (v *Validator) Fields() map[string]string {
	fields := make(map[string]string, len(v.errs))
	for _, fieldErr := range v.errs {
		if _, exists := fields[fieldErr.Field]; !exists {
			fields[fieldErr.Field] = fieldErr.Message
		}
	}
	return fields
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, kind, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Kind: kind, Message: message})
}

// StripSpace removes every whitespace rune from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
