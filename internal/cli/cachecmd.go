// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abra5umente/radarr-skill/internal/cache"
)

// NewCacheCmd groups the local result cache commands. These never touch the
// gateway.
func NewCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the local result cache",
	}

	cmd.AddCommand(
		newCacheListCmd(app),
		newCacheGetCmd(app),
		newCacheClearCmd(app),
	)
	return cmd
}

func newCacheListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := app.Store.List()
			if err != nil {
				return app.fail("Failed to read cache: " + err.Error())
			}
			return app.Out.Print(listing)
		},
	}
}

func newCacheGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <filename>",
		Short: "Load a cached result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := app.Store.Get(args[0])
			switch {
			case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrInvalidName):
				// A missing file is a data payload, not a command failure
				return app.Out.Print(errorDoc(fmt.Sprintf("Cache file %s not found", args[0])))
			case err != nil:
				return app.fail("Failed to read cache: " + err.Error())
			}
			return app.Out.Print(payload)
		},
	}
}

func newCacheClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleared, err := app.Store.Clear()
			if err != nil {
				return app.fail("Failed to clear cache: " + err.Error())
			}
			return app.Out.Print(map[string]any{"cleared": cleared})
		},
	}
}
