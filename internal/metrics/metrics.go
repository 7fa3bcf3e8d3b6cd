// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the gateway:
// - HTTP endpoint latency and throughput
// - Upstream Radarr call outcomes
// - Result cache activity

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "Total number of HTTP requests handled by the gateway",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_http_request_duration_seconds",
			Help:    "Duration of gateway HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	AuthFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_auth_failures_total",
			Help: "Total number of requests rejected for an invalid or missing proxy token",
		},
	)

	// Upstream Radarr Metrics
	RadarrRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radarr_upstream_requests_total",
			Help: "Total number of requests forwarded to the Radarr backend",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	RadarrRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "radarr_upstream_request_duration_seconds",
			Help:    "Duration of Radarr backend calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	RadarrTransportErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "radarr_upstream_transport_errors_total",
			Help: "Total number of Radarr backend calls that failed before receiving a response",
		},
	)

	// Result Cache Metrics
	CacheWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_writes_total",
			Help: "Total number of query results written to the result cache",
		},
	)

	CacheReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_reads_total",
			Help: "Total number of result cache reads by outcome",
		},
		[]string{"outcome"}, // "hit", "miss"
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Current number of entries in the result cache manifest",
		},
	)
)

// RecordHTTPRequest records a completed gateway request
func RecordHTTPRequest(method, route, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRadarrRequest records a completed Radarr backend call
func RecordRadarrRequest(method, endpoint, statusCode string, duration time.Duration) {
	RadarrRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	RadarrRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight gateway requests
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordCacheRead records a result cache read with its outcome
func RecordCacheRead(hit bool) {
	if hit {
		CacheReads.WithLabelValues("hit").Inc()
	} else {
		CacheReads.WithLabelValues("miss").Inc()
	}
}
