// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordHTTPRequest tests gateway request metric recording
func TestRecordHTTPRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		route      string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful search",
			method:     "GET",
			route:      "/search",
			statusCode: "200",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "successful add",
			method:     "POST",
			route:      "/movie/add",
			statusCode: "201",
			duration:   150 * time.Millisecond,
		},
		{
			name:       "unauthorized request",
			method:     "GET",
			route:      "/movies",
			statusCode: "401",
			duration:   time.Millisecond,
		},
		{
			name:       "backend failure",
			method:     "GET",
			route:      "/status",
			statusCode: "500",
			duration:   30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CollectAndCount(HTTPRequestsTotal)
			RecordHTTPRequest(tt.method, tt.route, tt.statusCode, tt.duration)
			after := testutil.CollectAndCount(HTTPRequestsTotal)
			if after < before {
				t.Errorf("expected series count to not decrease, got %d -> %d", before, after)
			}
		})
	}
}

// TestRecordRadarrRequest tests upstream call metric recording
func TestRecordRadarrRequest(t *testing.T) {
	RecordRadarrRequest("GET", "movie", "200", 10*time.Millisecond)
	RecordRadarrRequest("POST", "release", "404", 5*time.Millisecond)

	value := testutil.ToFloat64(RadarrRequestsTotal.WithLabelValues("GET", "movie", "200"))
	if value < 1 {
		t.Errorf("expected at least one recorded upstream request, got %f", value)
	}
}

// TestTrackActiveRequest verifies the in-flight gauge moves both ways
func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(HTTPActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(HTTPActiveRequests); got != base+1 {
		t.Errorf("expected gauge %f after increment, got %f", base+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(HTTPActiveRequests); got != base {
		t.Errorf("expected gauge %f after decrement, got %f", base, got)
	}
}

// TestRecordCacheRead verifies hit and miss outcomes are tracked separately
func TestRecordCacheRead(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheReads.WithLabelValues("hit"))
	missesBefore := testutil.ToFloat64(CacheReads.WithLabelValues("miss"))

	RecordCacheRead(true)
	RecordCacheRead(false)
	RecordCacheRead(false)

	if got := testutil.ToFloat64(CacheReads.WithLabelValues("hit")); got != hitsBefore+1 {
		t.Errorf("expected %f hits, got %f", hitsBefore+1, got)
	}
	if got := testutil.ToFloat64(CacheReads.WithLabelValues("miss")); got != missesBefore+2 {
		t.Errorf("expected %f misses, got %f", missesBefore+2, got)
	}
}

// TestMetricGathering verifies the registered metrics lint cleanly
func TestMetricGathering(t *testing.T) {
	RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
	RecordRadarrRequest("GET", "system/status", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordHTTPRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordHTTPRequest("GET", "/search", "200", 25*time.Millisecond)
	}
}

func BenchmarkTrackActiveRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TrackActiveRequest(true)
		TrackActiveRequest(false)
	}
}
