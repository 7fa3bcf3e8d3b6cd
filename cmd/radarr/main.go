// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

// Package main is the entry point for the radarr CLI.
//
// The CLI talks to the gateway, never to Radarr directly, so it needs only
// the gateway URL and the shared proxy token:
//
//	export RADARR_GATEWAY_URL=http://localhost:5000
//	export PROXY_TOKEN=the-shared-secret
//	radarr search "the matrix" 1999
//
// Every invocation prints exactly one JSON document to stdout and exits
// non-zero on failure. Large results are written to the local cache
// directory (RADARR_CACHE_DIR) and summarized instead of printed.
package main

import (
	"errors"
	"os"

	"github.com/abra5umente/radarr-skill/internal/cache"
	"github.com/abra5umente/radarr-skill/internal/cli"
	"github.com/abra5umente/radarr-skill/internal/config"
)

func main() {
	out := cli.NewOutput(os.Stdout)

	cfg, err := config.LoadCLI()
	if err != nil {
		_ = out.Print(map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	app := &cli.App{
		Client: cli.NewClient(cfg.CLI.GatewayURL, cfg.Proxy.Token),
		Store:  cache.NewStore(cfg.Cache.Dir),
		Out:    out,
	}

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		// ErrCommandFailed means the error document is already printed
		if !errors.Is(err, cli.ErrCommandFailed) {
			_ = out.Print(map[string]any{"error": err.Error()})
		}
		os.Exit(1)
	}
}
