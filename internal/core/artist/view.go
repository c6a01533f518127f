// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/artists/pkg/pointer"
)

// SortKey names a list ordering. The values match the ones the list page sends.
type SortKey string

const (
	SortByNickname SortKey = "nickname"
	SortByType     SortKey = "type"
	SortByCreated  SortKey = "createdAt"
	SortByUpdated  SortKey = "updatedAt"
)

// DefaultSort is the ordering the list page opens with.
const DefaultSort = SortByNickname

// SortKeys returns every supported key as strings, for validation messages.
func SortKeys() []string {
	return []string{string(SortByNickname), string(SortByType), string(SortByCreated), string(SortByUpdated)}
}

// Sorter derives display views from a loaded record set.
//
// It holds only the collation language; each call builds its own collator
// because [collate.Collator] keeps internal buffers and is not safe for
// concurrent use.
type Sorter struct {
	tag language.Tag
}

// NewSorter returns a Sorter collating by the BCP 47 locale (e.g. "ru", "en-US").
func NewSorter(locale string) (*Sorter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("artist: invalid collation locale %q: %w", locale, err)
	}
	return &Sorter{tag: tag}, nil
}

// View filters records by query and orders them by key.
//
// The input slice is never modified. Ordering is stable: records with equal
// keys keep their input order. Unknown keys leave the filtered order as is.
func (sorter *Sorter) View(records []*Artist, query string, key SortKey) []*Artist {
	view := Filter(records, query)

	switch key {
	case SortByNickname:
		collator := collate.New(sorter.tag)
		slices.SortStableFunc(view, func(a, b *Artist) int {
			return collator.CompareString(a.Nickname, b.Nickname)
		})
	case SortByType:
		collator := collate.New(sorter.tag)
		slices.SortStableFunc(view, func(a, b *Artist) int {
			return collator.CompareString(pointer.Val(a.Type), pointer.Val(b.Type))
		})
	case SortByCreated:
		slices.SortStableFunc(view, func(a, b *Artist) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortByUpdated:
		slices.SortStableFunc(view, func(a, b *Artist) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}

	return view
}

// Filter returns the records matching query, in input order, as a new slice.
// An empty query matches every record.
func Filter(records []*Artist, query string) []*Artist {
	view := make([]*Artist, 0, len(records))
	needle := strings.ToLower(query)

	for _, record := range records {
		if matches(record, needle) {
			view = append(view, record)
		}
	}
	return view
}

// Matches reports whether query is a case-insensitive substring of the
// record's nickname, type or email.
func Matches(record *Artist, query string) bool {
	return matches(record, strings.ToLower(query))
}

func matches(record *Artist, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(record.Nickname), needle) {
		return true
	}
	if record.Type != nil && strings.Contains(strings.ToLower(*record.Type), needle) {
		return true
	}
	return record.Email != nil && strings.Contains(strings.ToLower(*record.Email), needle)
}
