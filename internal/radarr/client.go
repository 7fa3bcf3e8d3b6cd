// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

/*
client.go - Core Radarr API Client

This file provides the HTTP communication layer for the Radarr v3 REST API.
The gateway holds the API key here; it never crosses back to callers.

Client Features:
  - HTTP client with configurable timeout (default 30s)
  - API key authentication via X-Api-Key header
  - JSON request/response handling with goccy/go-json
  - Context support for cancellation and timeouts

Error Contract:
Call never returns a Go error. Every outcome is expressed as a JSON-shaped
payload plus an HTTP status code so handlers can relay it to the caller
unchanged:
  - Backend JSON error bodies pass through verbatim with the backend status
  - Non-JSON error bodies become {"error": "<body text>"}
  - Transport failures become {"error": "<reason>"} with status 500
  - Empty 2xx bodies become {"success": true} with status 200
*/
package radarr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/abra5umente/radarr-skill/internal/config"
	"github.com/abra5umente/radarr-skill/internal/logging"
	"github.com/abra5umente/radarr-skill/internal/metrics"
)

// maxErrorBodySize limits the maximum amount of response body read for error
// reporting. Prevents unbounded memory allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// Caller forwards one request to the Radarr API. It is implemented by Client
// for production use and by mocks in handler tests.
//
// Thread Safety: implementations must be safe for concurrent use.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body any) (any, int)
}

// Client handles communication with the Radarr v3 HTTP API.
//
// Example:
//
//	client := radarr.NewClient(&cfg.Radarr, cfg.Server.Timeout)
//	payload, status := client.Call(ctx, http.MethodGet, "system/status", nil)
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a new Radarr API client. A trailing slash on the base URL
// is tolerated. The timeout bounds every call including body read.
func NewClient(cfg *config.RadarrConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// supportedMethods are the verbs the gateway will forward to Radarr.
var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Call forwards a single request to the Radarr API under /api/v3/.
// The endpoint may carry a query string and any number of leading slashes.
// See the file header for the full error contract.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) (any, int) {
	if !supportedMethods[method] {
		return map[string]any{"error": fmt.Sprintf("Unsupported method: %s", method)}, http.StatusBadRequest
	}

	url := fmt.Sprintf("%s/api/v3/%s", c.baseURL, strings.TrimLeft(endpoint, "/"))

	var reqBody io.Reader = http.NoBody
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		encoded, err := json.Marshal(body)
		if err != nil {
			return map[string]any{"error": fmt.Sprintf("failed to encode request body: %v", err)}, http.StatusInternalServerError
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return map[string]any{"error": err.Error()}, http.StatusInternalServerError
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RadarrTransportErrors.Inc()
		logging.CtxErr(ctx, err).Str("endpoint", endpointLabel(endpoint)).Msg("Radarr request failed")
		return map[string]any{"error": err.Error()}, http.StatusInternalServerError
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordRadarrRequest(method, endpointLabel(endpoint), fmt.Sprintf("%d", resp.StatusCode), time.Since(start))

	if resp.StatusCode >= 400 {
		return c.errorPayload(ctx, resp), resp.StatusCode
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.CtxErr(ctx, err).Str("endpoint", endpointLabel(endpoint)).Msg("Failed to read Radarr response")
		return map[string]any{"error": err.Error()}, http.StatusInternalServerError
	}

	var payload any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		// Some DELETE responses are empty
		return map[string]any{"success": true}, http.StatusOK
	}

	return payload, resp.StatusCode
}

// errorPayload converts a non-2xx response into a relayable JSON payload.
// JSON bodies pass through verbatim so Radarr's own error shape survives.
func (c *Client) errorPayload(ctx context.Context, resp *http.Response) any {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	logging.Ctx(ctx).Error().
		Int("status", resp.StatusCode).
		Msg("Radarr returned an error")

	var payload any
	if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil {
		return payload
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return map[string]any{"error": text}
}

// endpointLabel strips the query string from an endpoint for metric labels,
// keeping cardinality bounded.
func endpointLabel(endpoint string) string {
	endpoint = strings.TrimLeft(endpoint, "/")
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
