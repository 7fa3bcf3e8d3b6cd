// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

// Package cli implements the radarr command-line client.
//
// Every command talks to the gateway over HTTP, prints exactly one indented
// JSON document to standard output, and exits non-zero on failure. Large
// result sets (movies, releases, queue, wanted) are persisted to the local
// result cache and summarized on stdout instead of printed inline; the
// summary carries the saved file path so callers can grep the full payload.
// Smaller results print in full with a "_saved_to" path attached.
package cli
