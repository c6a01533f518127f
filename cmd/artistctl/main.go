// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command artistctl manages artist records from the terminal against the same
// backend the API server would select.
//
//	artistctl list --query dj --sort createdAt
//	artistctl add --nickname "Luna Vega" --type DJ --email luna@example.com
//	artistctl update <id> --telegram ""
//	artistctl delete <id>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/artists/internal/bootstrap"
	"github.com/taibuivan/artists/internal/core/artist"
	"github.com/taibuivan/artists/internal/platform/config"
	"github.com/taibuivan/artists/internal/platform/constants"
)

// app carries what every subcommand needs once the backend is open.
type app struct {
	service *artist.Service
	out     io.Writer
	asJSON  bool
	close   func()
}

func main() {
	root, state := newRootCommand(os.Stdout)
	err := root.Execute()
	state.shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) (*cobra.Command, *app) {
	state := &app{out: out}
	var backendMode string
	var verbose bool

	root := &cobra.Command{
		Use:           "artistctl",
		Short:         "Manage artist records",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if backendMode != "" {
				cfg.Backend = config.BackendMode(backendMode)
			}

			return state.open(cmd.Context(), cfg, logger)
		},
	}

	root.PersistentFlags().StringVar(&backendMode, "backend", "", "override BACKEND (auto, rest, postgres, memory)")
	root.PersistentFlags().BoolVar(&state.asJSON, "json", false, "print JSON instead of a table")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log backend activity to stderr")

	root.AddCommand(
		newListCommand(state),
		newSearchCommand(state),
		newShowCommand(state),
		newAddCommand(state),
		newUpdateCommand(state),
		newDeleteCommand(state),
		newValidateCommand(state),
	)
	root.SetOut(out)
	return root, state
}

// open selects the backend the same way the API server does.
func (state *app) open(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	backend, err := bootstrap.Open(startupCtx, cfg, logger)
	if err != nil {
		return err
	}

	sorter, err := artist.NewSorter(cfg.CollationLocale)
	if err != nil {
		backend.Close()
		return err
	}

	state.service = artist.NewService(backend.Repository, sorter, logger)
	state.close = backend.Close
	return nil
}

func (state *app) shutdown() {
	if state.close != nil {
		state.close()
		state.close = nil
	}
}

// fail turns a service error into a command error, listing field failures.
func fail(err error) error {
	fields := artist.FieldErrors(err)
	if len(fields) == 0 {
		return err
	}

	message := err.Error() + ":"
	for _, field := range sortedKeys(fields) {
		message += fmt.Sprintf("\n  %s: %s", field, fields[field])
	}
	return errors.New(message)
}
