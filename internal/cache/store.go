// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

// Package cache provides the disk-backed result store used by the CLI to keep
// large query results out of the conversation context.
//
// Layout under the cache root:
//
//	<root>/manifest.json                    index of every cached result
//	<root>/<operation>_<key>_<stamp>.json   one file per saved result
//
// The manifest maps filename to {operation, key, cached_at, path}. Each saved
// result carries the same metadata under a "_meta" field. Both formats are
// stable: other tools read these files directly.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/abra5umente/radarr-skill/internal/metrics"
)

const (
	manifestName = "manifest.json"

	// maxKeyLen bounds the sanitized key portion of a cache filename.
	maxKeyLen = 50
)

var (
	// ErrNotFound is returned by Get when no cache file matches the name.
	ErrNotFound = errors.New("cache entry not found")

	// ErrInvalidName is returned by Get for names that could escape the
	// cache root, for example "../secrets".
	ErrInvalidName = errors.New("invalid cache entry name")
)

// Entry is one manifest record describing a saved result.
type Entry struct {
	Operation string  `json:"operation"`
	Key       *string `json:"key"`
	CachedAt  string  `json:"cached_at"`
	Path      string  `json:"path"`
}

// manifest is the on-disk index. Keys are bare filenames. Order records
// insertion order, since a JSON object round-tripped through a Go map loses
// it; List relies on it to report entries in the order they were saved.
type manifest struct {
	Queries map[string]Entry `json:"queries"`
	Order   []string         `json:"order,omitempty"`
}

// normalizeOrder drops order entries whose files left the manifest and
// appends any queries the order slice never recorded (manifests written by
// other tools), keeping Order an exact permutation of the query keys.
func (m *manifest) normalizeOrder() {
	seen := make(map[string]bool, len(m.Queries))
	order := make([]string, 0, len(m.Queries))
	for _, name := range m.Order {
		if _, ok := m.Queries[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}

	missing := make([]string, 0)
	for name := range m.Queries {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	m.Order = append(order, missing...)
}

// ListedEntry is one row in a Listing, grouped under its operation.
type ListedEntry struct {
	Filename string  `json:"filename"`
	Key      *string `json:"key"`
	CachedAt string  `json:"cached_at"`
}

// Listing summarizes the cache contents grouped by operation.
type Listing struct {
	ByOperation map[string][]ListedEntry `json:"by_operation"`
	Total       int                      `json:"total"`
}

// Store is a disk-backed result store rooted at a single directory.
// Manifest updates are serialized by an in-process mutex and written with a
// temp-file rename, so concurrent Saves from one process cannot corrupt the
// index. Two processes saving the same operation and key within one second
// collide on filename; the later write wins.
type Store struct {
	root string
	mu   sync.Mutex
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first Save.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Save writes an API result to the cache and records it in the manifest.
// The result map is mutated: a "_meta" field with operation, key, cached_at,
// and path is added before writing, so the file and the caller's copy agree.
// Pass an empty key for operations with no natural key. Returns the absolute
// path of the cache file.
func (s *Store) Save(operation, key string, result map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}

	// Single clock read so the filename stamp and cached_at never disagree
	// across a second boundary.
	now := time.Now()
	stamp := now.Format("20060102_150405")
	cachedAt := now.Format(time.RFC3339)

	var filename string
	if key != "" {
		filename = fmt.Sprintf("%s_%s_%s.json", operation, sanitizeKey(key), stamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", operation, stamp)
	}

	path, err := filepath.Abs(filepath.Join(s.root, filename))
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache path: %w", err)
	}

	var keyField *string
	if key != "" {
		keyField = &key
	}

	result["_meta"] = map[string]any{
		"operation": operation,
		"key":       keyField,
		"cached_at": cachedAt,
		"path":      path,
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}

	m, err := s.loadManifest()
	if err != nil {
		return "", err
	}
	if _, exists := m.Queries[filename]; !exists {
		m.Order = append(m.Order, filename)
	}
	m.Queries[filename] = Entry{
		Operation: operation,
		Key:       keyField,
		CachedAt:  cachedAt,
		Path:      path,
	}
	if err := s.saveManifest(m); err != nil {
		return "", err
	}

	metrics.CacheWrites.Inc()
	metrics.CacheEntries.Set(float64(len(m.Queries)))

	return path, nil
}

// List returns all cached results grouped by operation. Entries within each
// group appear in the order they were saved.
func (s *Store) List() (*Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifest()
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		ByOperation: make(map[string][]ListedEntry),
		Total:       len(m.Queries),
	}
	for _, filename := range m.Order {
		entry := m.Queries[filename]
		op := entry.Operation
		if op == "" {
			op = "unknown"
		}
		listing.ByOperation[op] = append(listing.ByOperation[op], ListedEntry{
			Filename: filename,
			Key:      entry.Key,
			CachedAt: entry.CachedAt,
		})
	}

	return listing, nil
}

// Get loads one cached result by its bare filename. Names containing path
// separators or traversal sequences are rejected with ErrInvalidName before
// touching the filesystem.
func (s *Store) Get(name string) (any, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}

	raw, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			metrics.RecordCacheRead(false)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cache file %s: %w", name, err)
	}

	metrics.RecordCacheRead(true)
	return result, nil
}

// Clear removes the entire cache directory and returns the number of entries
// the manifest held.
func (s *Store) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifest()
	if err != nil {
		return 0, err
	}
	count := len(m.Queries)

	if err := os.RemoveAll(s.root); err != nil {
		return 0, fmt.Errorf("failed to remove cache dir: %w", err)
	}

	metrics.CacheEntries.Set(0)
	return count, nil
}

// loadManifest reads the manifest, returning an empty one when the file does
// not exist yet. Callers must hold s.mu.
func (s *Store) loadManifest() (*manifest, error) {
	m := &manifest{Queries: make(map[string]Entry)}

	raw, err := os.ReadFile(filepath.Join(s.root, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if m.Queries == nil {
		m.Queries = make(map[string]Entry)
	}
	m.normalizeOrder()
	return m, nil
}

// saveManifest writes the manifest atomically via temp file and rename, so a
// crash mid-write never leaves a truncated index. Callers must hold s.mu.
func (s *Store) saveManifest(m *manifest) error {
	encoded, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	tmp, err := os.CreateTemp(s.root, manifestName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp manifest: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp manifest: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.root, manifestName)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}

// sanitizeKey maps a cache key to a filename-safe token: alphanumerics,
// dashes, and underscores survive, everything else becomes an underscore.
// The result is truncated to keep filenames bounded.
func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	safe := b.String()
	if len(safe) > maxKeyLen {
		safe = safe[:maxKeyLen]
	}
	return safe
}

// validName reports whether name is a bare filename inside the cache root.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
