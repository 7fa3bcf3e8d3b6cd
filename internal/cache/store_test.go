// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestSave_WritesFileAndManifest(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	result := map[string]any{"movies": []any{}, "count": float64(0)}
	path, err := store.Save("search", "inception 2010", result)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "search_inception_2010_") {
		t.Errorf("unexpected filename %q", name)
	}
	if !strings.HasSuffix(name, ".json") {
		t.Errorf("expected .json suffix, got %q", name)
	}

	// The result map is mutated with metadata
	meta, ok := result["_meta"].(map[string]any)
	if !ok {
		t.Fatal("expected _meta added to result")
	}
	if meta["operation"] != "search" {
		t.Errorf("expected operation search, got %v", meta["operation"])
	}
	if meta["path"] != path {
		t.Errorf("expected meta path %q, got %v", path, meta["path"])
	}

	// The file on disk carries the same metadata
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read cache file: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("cache file is not valid JSON: %v", err)
	}
	if _, ok := onDisk["_meta"]; !ok {
		t.Error("expected _meta in cache file")
	}

	// The manifest records the entry
	raw, err = os.ReadFile(filepath.Join(store.Root(), "manifest.json"))
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	var m struct {
		Queries map[string]Entry `json:"queries"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	entry, ok := m.Queries[name]
	if !ok {
		t.Fatalf("expected manifest entry for %q, got %v", name, m)
	}
	if entry.Operation != "search" {
		t.Errorf("expected manifest operation search, got %q", entry.Operation)
	}
	if entry.Key == nil || *entry.Key != "inception 2010" {
		t.Errorf("expected manifest key preserved, got %v", entry.Key)
	}
}

func TestSave_NoKey(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	path, err := store.Save("queue", "", map[string]any{"items": []any{}})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "queue_") {
		t.Errorf("unexpected filename %q", name)
	}

	listing, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	entries := listing.ByOperation["queue"]
	if len(entries) != 1 {
		t.Fatalf("expected 1 queue entry, got %d", len(entries))
	}
	if entries[0].Key != nil {
		t.Errorf("expected null key, got %v", *entries[0].Key)
	}
}

func TestSave_StampMatchesCachedAt(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	result := map[string]any{}
	path, err := store.Save("queue", "", result)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	meta := result["_meta"].(map[string]any)
	cachedAt, err := time.Parse(time.RFC3339, meta["cached_at"].(string))
	if err != nil {
		t.Fatalf("cached_at is not RFC3339: %v", err)
	}

	// The filename stamp and cached_at come from the same instant, even
	// when Save straddles a second boundary.
	stamp := cachedAt.Format("20060102_150405")
	if want := "queue_" + stamp + ".json"; filepath.Base(path) != want {
		t.Errorf("filename %q does not match cached_at stamp %q", filepath.Base(path), want)
	}
}

func TestSave_ReturnsAbsolutePath(t *testing.T) {
	t.Chdir(t.TempDir())

	store := NewStore("cache")

	result := map[string]any{}
	path, err := store.Save("search", "dune", result)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path from relative root, got %q", path)
	}
	meta := result["_meta"].(map[string]any)
	if meta["path"] != path {
		t.Errorf("expected meta path %q, got %v", path, meta["path"])
	}
}

func TestSanitizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"plain", "inception", "inception"},
		{"spaces", "the matrix 1999", "the_matrix_1999"},
		{"punctuation", "movie: a/b?", "movie__a_b_"},
		{"keeps dashes and underscores", "a-b_c", "a-b_c"},
		{"truncated", strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeKey(tt.key); got != tt.want {
				t.Errorf("sanitizeKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestList_GroupsByOperation(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	mustSave := func(op, key string) {
		t.Helper()
		if _, err := store.Save(op, key, map[string]any{"v": float64(1)}); err != nil {
			t.Fatalf("Save(%s) returned error: %v", op, err)
		}
	}

	mustSave("search", "alpha")
	mustSave("search", "beta")
	mustSave("movies", "")

	listing, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if listing.Total != 3 {
		t.Errorf("expected total 3, got %d", listing.Total)
	}
	if len(listing.ByOperation["search"]) != 2 {
		t.Errorf("expected 2 search entries, got %d", len(listing.ByOperation["search"]))
	}
	if len(listing.ByOperation["movies"]) != 1 {
		t.Errorf("expected 1 movies entry, got %d", len(listing.ByOperation["movies"]))
	}
}

func TestList_PreservesSaveOrder(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	// Deliberately not alphabetical, so sorted output would fail.
	keys := []string{"zulu", "echo", "mike", "alpha", "xray", "delta", "kilo", "bravo"}
	for _, key := range keys {
		if _, err := store.Save("search", key, map[string]any{}); err != nil {
			t.Fatalf("Save(%s) returned error: %v", key, err)
		}
	}

	listing, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	entries := listing.ByOperation["search"]
	if len(entries) != len(keys) {
		t.Fatalf("expected %d entries, got %d", len(keys), len(entries))
	}
	for i, entry := range entries {
		if entry.Key == nil || *entry.Key != keys[i] {
			t.Errorf("position %d has key %v, want %s", i, entry.Key, keys[i])
		}
	}
}

func TestList_ManifestWithoutOrderField(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Manifests written before order tracking carry only the queries
	// object. List falls back to sorted filenames.
	legacy := `{"queries": {
		"search_b_20260101_000000.json": {"operation": "search", "key": "b", "cached_at": "2026-01-01T00:00:00Z", "path": "x"},
		"search_a_20260101_000001.json": {"operation": "search", "key": "a", "cached_at": "2026-01-01T00:00:01Z", "path": "y"}
	}}`
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	store := NewStore(dir)
	listing, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	entries := listing.ByOperation["search"]
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Filename != "search_a_20260101_000001.json" {
		t.Errorf("expected sorted fallback order, got %q first", entries[0].Filename)
	}
}

func TestList_EmptyStore(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	listing, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if listing.Total != 0 {
		t.Errorf("expected empty listing, got total %d", listing.Total)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	path, err := store.Save("releases", "603", map[string]any{"releases": []any{"a"}})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Get(filepath.Base(path))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", got)
	}
	if _, ok := m["_meta"]; !ok {
		t.Error("expected _meta in loaded result")
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get("missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_RejectsTraversal(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	names := []string{
		"",
		".",
		"..",
		"../manifest.json",
		"sub/entry.json",
		`sub\entry.json`,
		"/etc/passwd",
	}

	for _, name := range names {
		if _, err := store.Get(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Get(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestClear_RemovesEverything(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	if _, err := store.Save("search", "a", map[string]any{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := store.Save("queue", "", map[string]any{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	count, err := store.Clear()
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 cleared entries, got %d", count)
	}

	if _, err := os.Stat(store.Root()); !os.IsNotExist(err) {
		t.Error("expected cache dir removed")
	}

	// A fresh Save after Clear recreates the directory
	if _, err := store.Save("search", "b", map[string]any{}); err != nil {
		t.Fatalf("Save after Clear returned error: %v", err)
	}
}

func TestClear_EmptyStore(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	count, err := store.Clear()
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 cleared entries, got %d", count)
	}
}

func TestSave_ConcurrentWritersKeepManifestConsistent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := strings.Repeat("k", n+1)
			if _, err := store.Save("search", key, map[string]any{"n": float64(n)}); err != nil {
				t.Errorf("concurrent Save returned error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	listing, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if listing.Total != 8 {
		t.Errorf("expected 8 entries after concurrent saves, got %d", listing.Total)
	}
}
