// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package gateway

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/abra5umente/radarr-skill/internal/logging"
)

// respondJSON writes payload as the complete response body. The gateway's
// external schema is fixed, so payloads go out as-is with no envelope.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already out; nothing to salvage
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError writes a {"error": msg} document with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]any{"error": msg})
}
