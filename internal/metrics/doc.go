// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

/*
Package metrics provides Prometheus metrics collection and export for the gateway.

# Overview

The package instruments:
  - HTTP request latency and throughput per route
  - Proxy token authentication failures
  - Upstream Radarr call outcomes and transport errors
  - Result cache reads, writes, and manifest size

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

HTTP Metrics:
  - gateway_http_requests_total: Total HTTP requests (counter)
    Labels: method, route, status_code
  - gateway_http_request_duration_seconds: Request latency (histogram)
    Labels: method, route
  - gateway_http_active_requests: In-flight requests (gauge)
  - gateway_auth_failures_total: Rejected proxy tokens (counter)

Upstream Metrics:
  - radarr_upstream_requests_total: Forwarded Radarr calls (counter)
    Labels: method, endpoint, status_code
  - radarr_upstream_request_duration_seconds: Radarr call latency (histogram)
    Labels: method, endpoint
  - radarr_upstream_transport_errors_total: Calls that never got a response (counter)

Cache Metrics:
  - result_cache_writes_total: Cached query results (counter)
  - result_cache_reads_total: Cache reads by outcome (counter)
    Labels: outcome (hit, miss)
  - result_cache_entries: Manifest entry count (gauge)

# Cardinality Management

Route labels use the chi route pattern (for example /movie/{id}), never the
raw request path, so movie IDs and search terms cannot explode the series
count. Upstream endpoint labels are the path portion of the Radarr endpoint
with query parameters stripped.

# Thread Safety

All metric recording functions are safe for concurrent use from multiple
goroutines. The Prometheus client library handles synchronization internally.

# See Also

  - internal/middleware: HTTP middleware with metrics integration
  - internal/radarr: upstream call metrics recording
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics
