// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

/*
Package supervisor provides process supervision for the gateway using
suture v4.

The tree is small: a root supervisor with one API layer holding the HTTP
server. Crashed services restart automatically with exponential backoff;
context cancellation triggers orderly shutdown; supervision events go
through slog via the sutureslog adapter.

	Root ("radarr-skill")
	└── API ("api-layer")
	    └── HTTPServerService

# Usage

	tree := supervisor.NewTree(logger, supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil {
	    // supervisor stopped
	}

TreeConfig controls restart behavior (failure threshold, decay, backoff,
shutdown timeout); zero values fall back to suture's production defaults.
If services fail to stop within the timeout, UnstoppedServiceReport names
them.
*/
package supervisor
