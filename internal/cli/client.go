// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	// ProxyTokenHeader carries the shared secret on every gateway request.
	ProxyTokenHeader = "X-Proxy-Token"

	defaultTimeout = 30 * time.Second

	// maxErrorBodySnippet bounds the raw body attached to a non-JSON error.
	maxErrorBodySnippet = 200
)

// Client is the HTTP client for the gateway. It never returns a Go error:
// every outcome, including transport failures and non-JSON responses, is
// rendered as a JSON document so commands have exactly one result to print.
// Gateway error responses pass through unmodified.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a gateway client with a fixed request timeout.
func NewClient(gatewayURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(gatewayURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Get issues a GET against a gateway path.
func (c *Client) Get(path string) map[string]any {
	return c.Do(http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body against a gateway path.
func (c *Client) Post(path string, body any) map[string]any {
	return c.Do(http.MethodPost, path, body)
}

// Do performs one authenticated gateway request and decodes the JSON
// response regardless of status code.
func (c *Client) Do(method, path string, body any) map[string]any {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errorDoc("Failed to encode request: " + err.Error())
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+"/"+strings.TrimLeft(path, "/"), bodyReader)
	if err != nil {
		return errorDoc("Failed to build request: " + err.Error())
	}
	req.Header.Set(ProxyTokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorDoc("Connection error: " + err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorDoc("Failed to read response: " + err.Error())
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		snippet := string(raw)
		if len(snippet) > maxErrorBodySnippet {
			snippet = snippet[:maxErrorBodySnippet]
		}
		return map[string]any{
			"error": fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			"body":  snippet,
		}
	}
	return doc
}

// IsError reports whether a gateway document is an error payload.
func IsError(doc map[string]any) bool {
	_, ok := doc["error"]
	return ok
}

func errorDoc(msg string) map[string]any {
	return map[string]any{"error": msg}
}
