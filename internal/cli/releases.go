// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abra5umente/radarr-skill/internal/validation"
)

// downloadArgs is validated before anything is sent to the gateway.
type downloadArgs struct {
	GUID    string `validate:"required"`
	MovieID int    `validate:"required,gt=0"`
}

// downloadKeyLen bounds the cache key derived from a release guid.
const downloadKeyLen = 20

// NewReleasesCmd searches available releases for a movie. The full release
// list goes to the result cache; stdout gets a count and the saved path.
func NewReleasesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "releases <movie_id> [sort]",
		Short: "Search releases for a movie",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := strconv.Atoi(args[0])
			if err != nil {
				return app.fail("movie id must be an integer")
			}

			sortBy := "seeders"
			if len(args) > 1 {
				sortBy = args[1]
			}

			doc := app.Client.Get(fmt.Sprintf("releases/%d?sort=%s", movieID, url.QueryEscape(sortBy)))
			if IsError(doc) {
				return app.relayError(doc)
			}
			return app.printSummary("releases", args[0], doc, map[string]any{
				"count":    countField(doc, "releases"),
				"movie_id": movieID,
			})
		},
	}
}

// NewDownloadCmd asks the backend to grab a specific release.
func NewDownloadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "download <guid> <movie_id>",
		Short: "Download a specific release",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, _ := strconv.Atoi(args[1])
			if err := validation.ValidateStruct(downloadArgs{GUID: args[0], MovieID: movieID}); err != nil {
				return app.fail(err.Error())
			}

			doc := app.Client.Post("download", map[string]any{
				"guid":     args[0],
				"movie_id": movieID,
			})
			if IsError(doc) {
				return app.relayError(doc)
			}

			key := args[0]
			if len(key) > downloadKeyLen {
				key = key[:downloadKeyLen]
			}
			return app.printFull("download", key, doc)
		},
	}
}
