// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taibuivan/artists/internal/core/artist"
)

func newListCommand(state *app) *cobra.Command {
	var query, sortKey string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artists, filtered and sorted locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkSortKey(sortKey); err != nil {
				return err
			}

			listing, err := state.service.Browse(cmd.Context(), query, artist.SortKey(sortKey))
			if err != nil {
				return fail(err)
			}
			return state.printList(listing.Artists, fmt.Sprintf("%d of %d", len(listing.Artists), listing.Total))
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive match on nickname, type or email")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", string(artist.DefaultSort), "one of "+strings.Join(artist.SortKeys(), ", "))
	return cmd
}

func newSearchCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search artists on the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artists, err := state.service.SearchArtists(cmd.Context(), args[0])
			if err != nil {
				return fail(err)
			}
			return state.printList(artists, fmt.Sprintf("%d found", len(artists)))
		},
	}
}

func newShowCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.service.GetArtist(cmd.Context(), args[0])
			if err != nil {
				return fail(err)
			}
			return state.printOne(a)
		},
	}
}

func newAddCommand(state *app) *cobra.Command {
	var input artist.Input

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an artist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := state.service.CreateArtist(cmd.Context(), input)
			if err != nil {
				return fail(err)
			}
			return state.printOne(a)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Nickname, "nickname", "", "display name (required)")
	flags.StringVar(&input.Type, "type", "", "role, e.g. DJ or Vocalist")
	flags.StringVar(&input.Instagram, "instagram", "", "Instagram handle")
	flags.StringVar(&input.Telegram, "telegram", "", "Telegram handle")
	flags.StringVar(&input.Email, "email", "", "contact email")
	flags.StringVar(&input.Phone, "phone", "", "contact phone, international format")
	return cmd
}

func newUpdateCommand(state *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change some fields of an artist; an empty value clears an optional field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := patchFromFlags(cmd.Flags())
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			a, err := state.service.UpdateArtist(cmd.Context(), args[0], patch)
			if err != nil {
				return fail(err)
			}
			return state.printOne(a)
		},
	}

	for _, field := range []string{artist.FieldNickname, artist.FieldType, artist.FieldInstagram, artist.FieldTelegram, artist.FieldEmail, artist.FieldPhone} {
		cmd.Flags().String(field, "", "new "+field)
	}
	return cmd
}

func newDeleteCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.service.DeleteArtist(cmd.Context(), args[0]); err != nil {
				return fail(err)
			}
			_, err := fmt.Fprintf(state.out, "deleted %s\n", args[0])
			return err
		},
	}
}

func newValidateCommand(state *app) *cobra.Command {
	var input artist.Input

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a payload against the form rules without saving it",
		RunE: func(_ *cobra.Command, _ []string) error {
			fields := state.service.Validate(input)
			if state.asJSON {
				return state.printJSON(map[string]any{"valid": len(fields) == 0, "errors": fields})
			}
			if len(fields) == 0 {
				_, err := fmt.Fprintln(state.out, "valid")
				return err
			}
			for _, field := range sortedKeys(fields) {
				if _, err := fmt.Fprintf(state.out, "%s: %s\n", field, fields[field]); err != nil {
					return err
				}
			}
			return fmt.Errorf("%d field(s) invalid", len(fields))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Nickname, "nickname", "", "display name")
	flags.StringVar(&input.Email, "email", "", "contact email")
	flags.StringVar(&input.Phone, "phone", "", "contact phone")
	return cmd
}

// patchFromFlags includes only the flags the user actually set, so an explicit
// empty value clears a field while an omitted flag leaves it alone.
func patchFromFlags(flags *pflag.FlagSet) artist.Patch {
	var patch artist.Patch
	targets := map[string]**string{
		artist.FieldNickname:  &patch.Nickname,
		artist.FieldType:      &patch.Type,
		artist.FieldInstagram: &patch.Instagram,
		artist.FieldTelegram:  &patch.Telegram,
		artist.FieldEmail:     &patch.Email,
		artist.FieldPhone:     &patch.Phone,
	}

	flags.Visit(func(flag *pflag.Flag) {
		if target, ok := targets[flag.Name]; ok {
			value := flag.Value.String()
			*target = &value
		}
	})
	return patch
}

func checkSortKey(key string) error {
	for _, allowed := range artist.SortKeys() {
		if key == allowed {
			return nil
		}
	}
	return fmt.Errorf("unknown sort %q, want one of: %s", key, strings.Join(artist.SortKeys(), ", "))
}
