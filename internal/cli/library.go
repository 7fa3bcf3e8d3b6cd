// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abra5umente/radarr-skill/internal/validation"
)

// addMovieArgs is validated before anything is sent to the gateway.
type addMovieArgs struct {
	TmdbID int `validate:"required,gt=0"`
}

// NewSearchCmd searches the backend's movie catalog by title.
func NewSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query> [year]",
		Short: "Search for movies by title",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "search?query=" + url.QueryEscape(args[0])
			if len(args) > 1 {
				path += "&year=" + url.QueryEscape(args[1])
			}

			doc := app.Client.Get(path)
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printFull("search", args[0], doc)
		},
	}
}

// NewMoviesCmd lists the library. The full movie list goes to the result
// cache; stdout gets a count and the saved path.
func NewMoviesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "movies [monitored] [status]",
		Short: "List movies in library",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if len(args) > 0 && args[0] != "" {
				params.Set("monitored", args[0])
			}
			if len(args) > 1 && args[1] != "" {
				params.Set("status", args[1])
			}

			path := "movies"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			doc := app.Client.Get(path)
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printSummary("movies", "", doc, map[string]any{
				"count": countField(doc, "movies"),
			})
		},
	}
}

// NewMovieCmd shows details for one movie by its library id.
func NewMovieCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "movie <id>",
		Short: "Get details for a specific movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return app.fail("movie id must be an integer")
			}

			doc := app.Client.Get("movie/" + args[0])
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printFull("movie_details", args[0], doc)
		},
	}
}

// NewAddCmd adds a movie to the library by TMDB id.
func NewAddCmd(app *App) *cobra.Command {
	var (
		monitored      bool
		searchOnAdd    bool
		qualityProfile int
		rootFolder     string
	)

	cmd := &cobra.Command{
		Use:   "add <tmdb_id>",
		Short: "Add movie by TMDB ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, _ := strconv.Atoi(args[0])
			if err := validation.ValidateStruct(addMovieArgs{TmdbID: tmdbID}); err != nil {
				return app.fail(err.Error())
			}

			body := map[string]any{
				"tmdb_id":       tmdbID,
				"monitored":     monitored,
				"search_on_add": searchOnAdd,
			}
			if qualityProfile > 0 {
				body["quality_profile_id"] = qualityProfile
			}
			if rootFolder != "" {
				body["root_folder"] = rootFolder
			}

			doc := app.Client.Post("movie/add", body)
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printFull("add_movie", args[0], doc)
		},
	}

	cmd.Flags().BoolVar(&monitored, "monitored", true, "Monitor the movie after adding")
	cmd.Flags().BoolVar(&searchOnAdd, "search-on-add", true, "Search for releases immediately")
	cmd.Flags().IntVar(&qualityProfile, "quality-profile", 0, "Quality profile id (default: backend's first profile)")
	cmd.Flags().StringVar(&rootFolder, "root-folder", "", "Root folder path (default: backend's first root folder)")

	return cmd
}
