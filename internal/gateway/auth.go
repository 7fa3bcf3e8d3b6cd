// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package gateway

import (
	"crypto/subtle"
	"net/http"

	"github.com/abra5umente/radarr-skill/internal/logging"
	"github.com/abra5umente/radarr-skill/internal/metrics"
)

// ProxyTokenHeader carries the shared secret authenticating the caller.
const ProxyTokenHeader = "X-Proxy-Token"

// ProxyAuth rejects any request whose X-Proxy-Token header does not equal the
// configured token. The comparison is constant-time. Rejected requests never
// reach a handler, so no backend call can happen without a valid token.
func ProxyAuth(token string) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(ProxyTokenHeader))

			if subtle.ConstantTimeCompare(got, expected) != 1 {
				metrics.AuthFailures.Inc()
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Str("remote", r.RemoteAddr).
					Msg("Rejected request with invalid proxy token")
				respondError(w, http.StatusUnauthorized, "Invalid or missing proxy token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
