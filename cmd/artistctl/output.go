// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/taibuivan/artists/internal/core/artist"
	"github.com/taibuivan/artists/pkg/pointer"
)

func (state *app) printJSON(value any) error {
	encoder := json.NewEncoder(state.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func (state *app) printList(artists []*artist.Artist, summary string) error {
	if state.asJSON {
		return state.printJSON(artists)
	}

	writer := tabwriter.NewWriter(state.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNICKNAME\tTYPE\tEMAIL\tPHONE\tUPDATED")
	for _, a := range artists {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Nickname, text(a.Type), text(a.Email), text(a.Phone), a.UpdatedAt.Format(time.DateTime))
	}
	fmt.Fprintf(writer, "\n%s\n", summary)
	return writer.Flush()
}

func (state *app) printOne(a *artist.Artist) error {
	if state.asJSON {
		return state.printJSON(a)
	}

	writer := tabwriter.NewWriter(state.out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"id", a.ID},
		{"nickname", a.Nickname},
		{"type", text(a.Type)},
		{"instagram", text(a.Instagram)},
		{"telegram", text(a.Telegram)},
		{"email", text(a.Email)},
		{"phone", text(a.Phone)},
		{"created", a.CreatedAt.Format(time.RFC3339)},
		{"updated", a.UpdatedAt.Format(time.RFC3339)},
	}
	for _, row := range rows {
		fmt.Fprintf(writer, "%s:\t%s\n", row[0], row[1])
	}
	return writer.Flush()
}

func text(value *string) string {
	return pointer.Or(value, "-")
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
