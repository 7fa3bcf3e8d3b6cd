// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

/*
project.go - Backend Payload Projections

Helpers for reshaping decoded Radarr JSON into the gateway's stable external
schema. Backend payloads arrive as untyped JSON (map[string]any / []any), and
these helpers keep the null-handling in one place: a missing field projects to
null rather than failing, matching what callers of the original deployment
already expect.
*/
package gateway

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// asMap returns v as an object, or nil when it is anything else.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asList returns v as an array, or nil when it is anything else.
func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// stringField returns the field as a string, empty when missing or non-string.
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// floatField returns the field as a float64, falling back to def when the
// field is missing or non-numeric.
func floatField(m map[string]any, key string, def float64) float64 {
	if f, ok := m[key].(float64); ok {
		return f
	}
	return def
}

// orDefault substitutes def for a missing (null) field.
func orDefault(v, def any) any {
	if v == nil {
		return def
	}
	return v
}

// truncate bounds s to at most n characters, never splitting a multi-byte
// rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// nested walks a chain of object fields, returning nil as soon as any link is
// missing. nested(m, "quality", "quality", "name") mirrors the backend's
// doubly-wrapped quality records.
func nested(m map[string]any, keys ...string) any {
	var current any = m
	for _, key := range keys {
		obj := asMap(current)
		if obj == nil {
			return nil
		}
		current = obj[key]
	}
	return current
}

// genreNames flattens the backend's polymorphic genre list. Radarr has
// returned both bare strings and {name: ...} objects across versions; both
// collapse to the name here so nothing downstream sees the ambiguity.
func genreNames(v any) []any {
	items := asList(v)
	names := make([]any, 0, len(items))
	for _, g := range items {
		switch t := g.(type) {
		case string:
			names = append(names, t)
		case map[string]any:
			names = append(names, t["name"])
		default:
			names = append(names, nil)
		}
	}
	return names
}

// idString renders a caller-supplied identifier for use in a backend query.
// JSON numbers arrive as float64; whole values print without a decimal part.
func idString(v any) (string, bool) {
	switch t := v.(type) {
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case string:
		if strings.TrimSpace(t) == "" {
			return "", false
		}
		return t, true
	default:
		return "", false
	}
}

// truthy mirrors loose falsiness for decoded JSON values: null, false, zero,
// empty string, empty array, and empty object all count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
