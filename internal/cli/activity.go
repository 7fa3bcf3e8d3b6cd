// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewQueueCmd shows the download queue. The full queue goes to the result
// cache; stdout gets counts and the saved path.
func NewQueueCmd(app *App) *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Get download queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := app.Client.Get(fmt.Sprintf("queue?page=%d&page_size=%d", page, pageSize))
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printSummary("queue", "", doc, map[string]any{
				"count": countField(doc, "items"),
				"total": totalField(doc),
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Queue page to fetch")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Items per page")

	return cmd
}

// NewWantedCmd shows wanted/missing movies. The full list goes to the result
// cache; stdout gets counts and the saved path.
func NewWantedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wanted",
		Short: "Get wanted/missing movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := app.Client.Get("wanted")
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printSummary("wanted", "", doc, map[string]any{
				"count": countField(doc, "movies"),
				"total": totalField(doc),
			})
		},
	}
}

// NewStatusCmd shows merged system status, health, and disk space.
func NewStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get system status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := app.Client.Get("status")
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printFull("status", "", doc)
		},
	}
}
