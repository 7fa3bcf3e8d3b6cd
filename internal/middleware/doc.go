// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

/*
Package middleware provides HTTP middleware for the gateway.

  - RequestID: per-request UUID, honored from X-Request-ID and propagated
    through the logging context
  - PrometheusMetrics: request counts, latency, and in-flight gauges labeled
    by chi route pattern
  - Compression: gzip for clients that accept it

All middleware uses the standard func(http.Handler) http.Handler shape and
composes through chi's Use. Authentication lives in the gateway package,
next to the routes it guards.
*/
package middleware
