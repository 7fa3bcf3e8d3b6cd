// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

/*
Package services provides suture.Service wrappers for gateway components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

translating a component's native lifecycle into suture's context-aware Serve
pattern.

HTTPServerService wraps *http.Server: ListenAndServe runs in a goroutine,
context cancellation triggers a graceful Shutdown with a configurable
timeout for draining connections, and http.ErrServerClosed maps to a clean
exit so the supervisor does not restart a deliberately stopped server.
*/
package services
