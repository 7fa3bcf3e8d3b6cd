// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package gateway

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGenreNames_Polymorphic(t *testing.T) {
	t.Parallel()

	got := genreNames([]any{
		"Action",
		map[string]any{"name": "Sci-Fi", "id": float64(878)},
		float64(3),
	})

	want := []any{"Action", "Sci-Fi", nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("genreNames() = %v, want %v", got, want)
	}

	if got := genreNames(nil); len(got) != 0 {
		t.Errorf("expected empty list for nil genres, got %v", got)
	}
	if got := genreNames("not a list"); len(got) != 0 {
		t.Errorf("expected empty list for non-list genres, got %v", got)
	}
}

func TestNested_WalksAndStopsAtMissingLink(t *testing.T) {
	t.Parallel()

	m := map[string]any{
		"quality": map[string]any{
			"quality": map[string]any{"name": "Bluray-1080p"},
		},
	}

	if got := nested(m, "quality", "quality", "name"); got != "Bluray-1080p" {
		t.Errorf("nested() = %v, want Bluray-1080p", got)
	}
	if got := nested(m, "quality", "missing", "name"); got != nil {
		t.Errorf("expected nil for missing link, got %v", got)
	}
	if got := nested(nil, "anything"); got != nil {
		t.Errorf("expected nil for nil root, got %v", got)
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", float64(0), false},
		{"number", float64(7), true},
		{"empty string", "", false},
		{"string", "x", true},
		{"empty list", []any{}, false},
		{"list", []any{1}, true},
		{"empty object", map[string]any{}, false},
		{"object", map[string]any{"a": 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truthy(tt.v); got != tt.want {
				t.Errorf("truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestIDString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v      any
		want   string
		wantOK bool
	}{
		{"whole float", float64(27205), "27205", true},
		{"fractional float", float64(1.5), "1.5", true},
		{"string", "27205", "27205", true},
		{"blank string", "   ", "", false},
		{"nil", nil, "", false},
		{"bool", true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := idString(tt.v)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("idString(%v) = (%q, %v), want (%q, %v)", tt.v, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 200); got != "short" {
		t.Errorf("expected short string unchanged, got %q", got)
	}
	if got := truncate(strings.Repeat("a", 300), 200); utf8.RuneCountInString(got) != 200 {
		t.Errorf("expected 200 characters, got %d", utf8.RuneCountInString(got))
	}

	// Multi-byte text truncates on characters, not bytes, and never leaves
	// a torn rune at the cut.
	got := truncate(strings.Repeat("é", 300), 200)
	if n := utf8.RuneCountInString(got); n != 200 {
		t.Errorf("expected 200 characters, got %d", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncated string is not valid UTF-8")
	}
	if !strings.HasPrefix(strings.Repeat("é", 300), got) {
		t.Error("truncated string is not a prefix of the input")
	}
}
