// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the radarr command tree. Invoking the root with no
// subcommand prints the usage document and fails, matching the behavior of
// an unknown command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "radarr",
		Short:         "Movie management through the Radarr gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = app.Out.Print(usageDoc())
			return ErrCommandFailed
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(newHelpCmd(app))

	root.AddCommand(
		NewSearchCmd(app),
		NewMoviesCmd(app),
		NewMovieCmd(app),
		NewAddCmd(app),
		NewReleasesCmd(app),
		NewDownloadCmd(app),
		NewQueueCmd(app),
		NewWantedCmd(app),
		NewStatusCmd(app),
		NewCacheCmd(app),
	)
	return root
}

// newHelpCmd prints usage as a JSON document, like every other command
// output.
func newHelpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Print usage information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Out.Print(usageDoc())
		},
	}
}

func usageDoc() map[string]any {
	return map[string]any{
		"usage": "radarr <command> [args]",
		"commands": map[string]any{
			"search <query> [year]":       "Search for movies by title",
			"movies [monitored] [status]": "List movies in library",
			"movie <id>":                  "Get details for a specific movie",
			"add <tmdb_id>":               "Add movie by TMDB ID",
			"releases <movie_id> [sort]":  "Search releases for a movie",
			"download <guid> <movie_id>":  "Download a specific release",
			"queue":                       "Get download queue",
			"wanted":                      "Get wanted/missing movies",
			"status":                      "Get system status",
			"cache list|get|clear":        "Inspect the local result cache",
		},
		"notes": []string{
			"Large results (movies, releases, queue, wanted) return metadata only",
			"Full data is saved to the cache directory - grep the files directly",
		},
	}
}
