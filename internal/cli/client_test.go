// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestClient_SetsTokenAndContentType(t *testing.T) {
	t.Parallel()

	var gotToken, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(ProxyTokenHeader)
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/", "secret")
	doc := client.Get("status")

	if gotToken != "secret" {
		t.Errorf("expected token header, got %q", gotToken)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected content type set, got %q", gotContentType)
	}
	if doc["status"] != "ok" {
		t.Errorf("unexpected document %v", doc)
	}
}

func TestClient_PostForwardsBody(t *testing.T) {
	t.Parallel()

	var sent map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&sent)
		w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "secret")
	doc := client.Post("download", map[string]any{"guid": "abc", "movie_id": 7})

	if sent["guid"] != "abc" || sent["movie_id"] != float64(7) {
		t.Errorf("unexpected forwarded body %v", sent)
	}
	if doc["success"] != true {
		t.Errorf("unexpected document %v", doc)
	}
}

func TestClient_ErrorPayloadPassesThrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid or missing proxy token"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "wrong")
	doc := client.Get("movies")

	if !IsError(doc) {
		t.Fatalf("expected error document, got %v", doc)
	}
	if doc["error"] != "Invalid or missing proxy token" {
		t.Errorf("expected gateway error relayed, got %v", doc)
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "secret")
	doc := client.Get("movies")

	if doc["error"] != "HTTP 502: Bad Gateway" {
		t.Errorf("unexpected error %v", doc["error"])
	}
	if doc["body"] != "<html>upstream exploded</html>" {
		t.Errorf("expected raw body attached, got %v", doc["body"])
	}
}

func TestClient_ConnectionError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "secret")
	doc := client.Get("status")

	if !IsError(doc) {
		t.Fatalf("expected error document, got %v", doc)
	}
}
