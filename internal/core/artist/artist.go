// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package artist implements the artist registry: the record schema, the form
// rules, the list view (filter and sort), the backend strategies and the
// service boundary that turns backend failures into classified results.
package artist

import (
	"strings"
	"time"

	"github.com/taibuivan/artists/pkg/pointer"
)

// Artist is a performer tracked by the registry.
//
// Optional contact fields are nil when absent. Timestamps are set by the
// access layer; UpdatedAt is refreshed on every successful update.
type Artist struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Type      *string   `json:"type"`
	Instagram *string   `json:"instagram"`
	Telegram  *string   `json:"telegram"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the creation payload. Empty optional values mean "absent".
type Input struct {
	Nickname  string `json:"nickname"`
	Type      string `json:"type,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Telegram  string `json:"telegram,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Patch is the partial update payload.
//
// A nil field is left unchanged; a pointer to an empty string clears an
// optional field. Nickname can be changed but never cleared.
type Patch struct {
	Nickname  *string `json:"nickname,omitempty"`
	Type      *string `json:"type,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Telegram  *string `json:"telegram,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

const (
	FieldID        = "id"
	FieldNickname  = "nickname"
	FieldType      = "type"
	FieldInstagram = "instagram"
	FieldTelegram  = "telegram"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// optionalFields lists the nullable payload fields in column order.
var optionalFields = []string{FieldType, FieldInstagram, FieldTelegram, FieldEmail, FieldPhone}

// Clone returns a deep copy so callers never share pointers with a store.
func (a *Artist) Clone() *Artist {
	if a == nil {
		return nil
	}
	clone := *a
	clone.Type = pointer.Clone(a.Type)
	clone.Instagram = pointer.Clone(a.Instagram)
	clone.Telegram = pointer.Clone(a.Telegram)
	clone.Email = pointer.Clone(a.Email)
	clone.Phone = pointer.Clone(a.Phone)
	return &clone
}

// field returns a pointer to the optional field named name.
func (a *Artist) field(name string) **string {
	switch name {
	case FieldType:
		return &a.Type
	case FieldInstagram:
		return &a.Instagram
	case FieldTelegram:
		return &a.Telegram
	case FieldEmail:
		return &a.Email
	case FieldPhone:
		return &a.Phone
	}
	return nil
}

// Normalize trims every value.
func (in Input) Normalize() Input {
	return Input{
		Nickname:  strings.TrimSpace(in.Nickname),
		Type:      strings.TrimSpace(in.Type),
		Instagram: strings.TrimSpace(in.Instagram),
		Telegram:  strings.TrimSpace(in.Telegram),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
	}
}

// Values returns the optional fields keyed by column name, nil for absent ones.
func (in Input) Values() map[string]*string {
	in = in.Normalize()
	return map[string]*string{
		FieldType:      optional(in.Type),
		FieldInstagram: optional(in.Instagram),
		FieldTelegram:  optional(in.Telegram),
		FieldEmail:     optional(in.Email),
		FieldPhone:     optional(in.Phone),
	}
}

// NewArtist builds the record a backend persists for in.
func (in Input) NewArtist(id string, now time.Time) *Artist {
	record := &Artist{
		ID:        id,
		Nickname:  strings.TrimSpace(in.Nickname),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for name, value := range in.Values() {
		*record.field(name) = value
	}
	return record
}

// Changes returns the fields present in the patch keyed by column name.
// Cleared optional fields map to nil; nickname is trimmed.
func (p Patch) Changes() map[string]*string {
	changes := make(map[string]*string)
	if p.Nickname != nil {
		nickname := strings.TrimSpace(*p.Nickname)
		changes[FieldNickname] = &nickname
	}
	for _, name := range optionalFields {
		if value := p.value(name); value != nil {
			changes[name] = optional(strings.TrimSpace(*value))
		}
	}
	return changes
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Changes()) == 0
}

// Apply writes the patch into a and stamps UpdatedAt.
func (p Patch) Apply(a *Artist, now time.Time) {
	for name, value := range p.Changes() {
		if name == FieldNickname {
			a.Nickname = *value
			continue
		}
		*a.field(name) = value
	}
	a.UpdatedAt = now
}

// value returns the raw patch pointer for an optional field.
func (p Patch) value(name string) *string {
	switch name {
	case FieldType:
		return p.Type
	case FieldInstagram:
		return p.Instagram
	case FieldTelegram:
		return p.Telegram
	case FieldEmail:
		return p.Email
	case FieldPhone:
		return p.Phone
	}
	return nil
}

// stamp normalizes a timestamp to UTC with the microsecond precision that
// PostgreSQL stores, so every backend hands out comparable values.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// nextUpdate returns a timestamp strictly after previous.
func nextUpdate(now, previous time.Time) time.Time {
	now = stamp(now)
	if !now.After(previous) {
		return previous.Add(time.Microsecond)
	}
	return now
}

func optional(value string) *string {
	return pointer.NonZero(value)
}
