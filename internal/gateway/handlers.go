// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

/*
handlers.go - Gateway Route Handlers

Every handler follows the same pattern: read request parameters, forward one
or more calls through the radarr.Caller, and either relay a backend error
verbatim with its status code or project the payload into the gateway's
stable external schema. Handlers are stateless; each request is independent.

Error relay rules:
  - Backend non-200: the backend payload and status pass through unchanged
  - Local validation failure: {"error": ...} with status 400
  - Empty lookup on add: {"error": ...} with status 404
*/
package gateway

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/abra5umente/radarr-skill/internal/logging"
	"github.com/abra5umente/radarr-skill/internal/radarr"
)

const (
	maxSearchResults  = 10
	maxReleaseResults = 20
	maxOverviewLen    = 200

	defaultPageSize = 20
)

// Handler holds the gateway's route handlers. All Radarr access goes through
// the Caller so tests can substitute a mock backend.
type Handler struct {
	radarr radarr.Caller
}

// NewHandler creates the route handler set.
func NewHandler(caller radarr.Caller) *Handler {
	return &Handler{radarr: caller}
}

// Health is the liveness probe. It is the only route exempt from proxy token
// authentication and never touches the backend.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Proxy is the generic passthrough: /api/<endpoint> forwards method, body,
// and query string verbatim to Radarr and relays the response unchanged.
func (h *Handler) Proxy(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "*")

	if r.Method == http.MethodGet && r.URL.RawQuery != "" {
		endpoint = endpoint + "?" + r.URL.RawQuery
	}

	// Body is optional on every method; decode failures mean no body
	var body any
	_ = json.NewDecoder(r.Body).Decode(&body)

	payload, status := h.radarr.Call(r.Context(), r.Method, endpoint, body)
	respondJSON(w, status, payload)
}

// Search looks up movies by title, optionally narrowed by year, and projects
// the first results into compact summaries.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	year := r.URL.Query().Get("year")

	term := query
	if year != "" {
		term = strings.TrimSpace(query + " " + year)
	}

	payload, status := h.radarr.Call(r.Context(), http.MethodGet, "movie/lookup?term="+url.QueryEscape(term), nil)
	if status != http.StatusOK {
		respondJSON(w, status, payload)
		return
	}

	results := asList(payload)
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	movies := make([]any, 0, len(results))
	for _, item := range results {
		m := asMap(item)
		movies = append(movies, map[string]any{
			"title":    orDefault(m["title"], "Unknown"),
			"year":     m["year"],
			"overview": truncate(stringField(m, "overview"), maxOverviewLen),
			"tmdb_id":  m["tmdbId"],
			"imdb_id":  m["imdbId"],
			"runtime":  m["runtime"],
			"status":   m["status"],
			"genres":   genreNames(m["genres"]),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"movies": movies, "count": len(movies)})
}

// Movies lists the library with optional monitored/status filters. Filtering
// happens gateway-side after a full fetch; Radarr's movie endpoint has no
// server-side filter for these fields.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	payload, status := h.radarr.Call(r.Context(), http.MethodGet, "movie", nil)
	if status != http.StatusOK {
		respondJSON(w, status, payload)
		return
	}

	items := asList(payload)

	if monitored := r.URL.Query().Get("monitored"); monitored != "" {
		want := strings.EqualFold(monitored, "true")
		filtered := make([]any, 0, len(items))
		for _, item := range items {
			if b, _ := asMap(item)["monitored"].(bool); b == want {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if statusFilter := r.URL.Query().Get("status"); statusFilter != "" {
		filtered := make([]any, 0, len(items))
		for _, item := range items {
			if stringField(asMap(item), "status") == statusFilter {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	movies := make([]any, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		movies = append(movies, map[string]any{
			"id":              m["id"],
			"title":           m["title"],
			"year":            m["year"],
			"status":          m["status"],
			"monitored":       m["monitored"],
			"has_file":        orDefault(m["hasFile"], false),
			"size_on_disk":    orDefault(m["sizeOnDisk"], 0),
			"quality_profile": nested(m, "qualityProfile", "name"),
			"tmdb_id":         m["tmdbId"],
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"movies": movies, "count": len(movies)})
}

// QualityProfiles lists the backend's quality profiles as {id, name} pairs.
func (h *Handler) QualityProfiles(w http.ResponseWriter, r *http.Request) {
	payload, status := h.radarr.Call(r.Context(), http.MethodGet, "qualityprofile", nil)
	if status != http.StatusOK {
		respondJSON(w, status, payload)
		return
	}

	items := asList(payload)
	profiles := make([]any, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		profiles = append(profiles, map[string]any{
			"id":   m["id"],
			"name": m["name"],
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"profiles": profiles, "count": len(profiles)})
}

// MovieDetails returns one movie projected to a fixed field set, including a
// nested file object when the movie has a downloaded file.
func (h *Handler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	payload, status := h.radarr.Call(r.Context(), http.MethodGet, fmt.Sprintf("movie/%d", movieID), nil)
	if status != http.StatusOK {
		respondJSON(w, status, payload)
		return
	}

	m := asMap(payload)
	movie := map[string]any{
		"id":              m["id"],
		"title":           m["title"],
		"year":            m["year"],
		"overview":        m["overview"],
		"status":          m["status"],
		"monitored":       m["monitored"],
		"has_file":        m["hasFile"],
		"runtime":         m["runtime"],
		"genres":          genreNames(m["genres"]),
		"quality_profile": nested(m, "qualityProfile", "name"),
		"root_folder":     m["rootFolderPath"],
		"size_on_disk":    m["sizeOnDisk"],
		"tmdb_id":         m["tmdbId"],
		"imdb_id":         m["imdbId"],
	}

	if mf := asMap(m["movieFile"]); len(mf) > 0 {
		movie["file"] = map[string]any{
			"path":       mf["relativePath"],
			"size":       mf["size"],
			"quality":    nested(mf, "quality", "quality", "name"),
			"date_added": mf["dateAdded"],
		}
	}

	respondJSON(w, http.StatusOK, movie)
}

// AddMovie adds a movie by TMDB id. Missing quality profile and root folder
// fall back to the backend's first configured entry.
func (h *Handler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body = map[string]any{}
	}

	tmdbID, ok := idString(body["tmdb_id"])
	if !ok || !truthy(body["tmdb_id"]) {
		respondError(w, http.StatusBadRequest, "tmdb_id is required")
		return
	}

	lookup, status := h.radarr.Call(r.Context(), http.MethodGet, "movie/lookup/tmdb?tmdbId="+url.QueryEscape(tmdbID), nil)
	if status != http.StatusOK {
		respondJSON(w, status, lookup)
		return
	}
	if !truthy(lookup) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Movie with TMDB ID %s not found", tmdbID))
		return
	}

	qualityProfileID := body["quality_profile_id"]
	if !truthy(qualityProfileID) {
		profiles, _ := h.radarr.Call(r.Context(), http.MethodGet, "qualityprofile", nil)
		if list := asList(profiles); len(list) > 0 {
			qualityProfileID = asMap(list[0])["id"]
		} else {
			qualityProfileID = 1
		}
	}

	rootFolder := body["root_folder"]
	if !truthy(rootFolder) {
		folders, _ := h.radarr.Call(r.Context(), http.MethodGet, "rootfolder", nil)
		if list := asList(folders); len(list) > 0 {
			rootFolder = asMap(list[0])["path"]
		} else {
			rootFolder = "/movies"
		}
	}

	lookupMap := asMap(lookup)
	movieData := map[string]any{
		"title":            lookupMap["title"],
		"year":             lookupMap["year"],
		"tmdbId":           lookupMap["tmdbId"],
		"imdbId":           lookupMap["imdbId"],
		"titleSlug":        lookupMap["titleSlug"],
		"images":           orDefault(lookupMap["images"], []any{}),
		"runtime":          lookupMap["runtime"],
		"overview":         lookupMap["overview"],
		"genres":           orDefault(lookupMap["genres"], []any{}),
		"qualityProfileId": qualityProfileID,
		"rootFolderPath":   rootFolder,
		"monitored":        orDefault(body["monitored"], true),
		"addOptions": map[string]any{
			"searchForMovie": orDefault(body["search_on_add"], true),
		},
	}

	result, status := h.radarr.Call(r.Context(), http.MethodPost, "movie", movieData)
	if status != http.StatusOK && status != http.StatusCreated {
		respondJSON(w, status, result)
		return
	}

	resultMap := asMap(result)
	logging.Ctx(r.Context()).Info().
		Str("tmdb_id", tmdbID).
		Msg("Added movie")

	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"id":        resultMap["id"],
		"title":     resultMap["title"],
		"year":      resultMap["year"],
		"monitored": resultMap["monitored"],
	})
}

// Releases searches available releases for a movie, sorted by seeders (or
// size when requested) and truncated to the top entries.
func (h *Handler) Releases(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = "seeders"
	}

	payload, status := h.radarr.Call(r.Context(), http.MethodGet, fmt.Sprintf("release?movieId=%d", movieID), nil)
	if status != http.StatusOK {
		respondJSON(w, status, payload)
		return
	}

	releases := asList(payload)
	switch sortBy {
	case "seeders":
		sort.SliceStable(releases, func(i, j int) bool {
			return floatField(asMap(releases[i]), "seeders", 0) > floatField(asMap(releases[j]), "seeders", 0)
		})
	case "size":
		sort.SliceStable(releases, func(i, j int) bool {
			return floatField(asMap(releases[i]), "size", 0) > floatField(asMap(releases[j]), "size", 0)
		})
	}

	if len(releases) > maxReleaseResults {
		releases = releases[:maxReleaseResults]
	}

	processed := make([]any, 0, len(releases))
	for _, item := range releases {
		m := asMap(item)
		processed = append(processed, map[string]any{
			"guid":       m["guid"],
			"title":      m["title"],
			"size":       m["size"],
			"seeders":    m["seeders"],
			"leechers":   m["leechers"],
			"quality":    nested(m, "quality", "quality", "name"),
			"indexer":    m["indexer"],
			"approved":   orDefault(m["approved"], false),
			"rejections": orDefault(m["rejections"], []any{}),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"releases": processed, "count": len(processed)})
}

// Download asks the backend to grab a specific release.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body = map[string]any{}
	}

	guid := body["guid"]
	movieID := body["movie_id"]
	if !truthy(guid) || !truthy(movieID) {
		respondError(w, http.StatusBadRequest, "guid and movie_id are required")
		return
	}

	result, status := h.radarr.Call(r.Context(), http.MethodPost, "release", map[string]any{
		"guid":    guid,
		"movieId": movieID,
	})

	respondJSON(w, status, map[string]any{
		"success": status == http.StatusOK || status == http.StatusCreated,
		"result":  result,
	})
}

// Queue returns the download queue with a computed progress percentage per
// item.
func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	page := intQueryParam(r, "page", 1)
	pageSize := intQueryParam(r, "page_size", defaultPageSize)

	payload, status := h.radarr.Call(r.Context(), http.MethodGet, fmt.Sprintf("queue?page=%d&pageSize=%d", page, pageSize), nil)
	if status != http.StatusOK {
		respondJSON(w, status, payload)
		return
	}

	result := asMap(payload)
	records := asList(result["records"])

	items := make([]any, 0, len(records))
	for _, record := range records {
		m := asMap(record)
		items = append(items, map[string]any{
			"id":              m["id"],
			"movie_title":     nested(m, "movie", "title"),
			"title":           m["title"],
			"size":            m["size"],
			"sizeleft":        m["sizeleft"],
			"status":          m["status"],
			"progress":        downloadProgress(m),
			"eta":             m["estimatedCompletionTime"],
			"quality":         nested(m, "quality", "quality", "name"),
			"download_client": m["downloadClient"],
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
		"total": orDefault(result["totalRecords"], 0),
	})
}

// Wanted returns missing monitored movies sorted by title.
func (h *Handler) Wanted(w http.ResponseWriter, r *http.Request) {
	page := intQueryParam(r, "page", 1)
	pageSize := intQueryParam(r, "page_size", defaultPageSize)

	payload, status := h.radarr.Call(r.Context(), http.MethodGet,
		fmt.Sprintf("wanted/missing?page=%d&pageSize=%d&sortKey=title", page, pageSize), nil)
	if status != http.StatusOK {
		respondJSON(w, status, payload)
		return
	}

	result := asMap(payload)
	records := asList(result["records"])

	movies := make([]any, 0, len(records))
	for _, record := range records {
		m := asMap(record)
		movies = append(movies, map[string]any{
			"id":              m["id"],
			"title":           m["title"],
			"year":            m["year"],
			"status":          m["status"],
			"quality_profile": nested(m, "qualityProfile", "name"),
			"tmdb_id":         m["tmdbId"],
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"movies": movies,
		"count":  len(movies),
		"total":  orDefault(result["totalRecords"], 0),
	})
}

// Status merges system status, health, and disk space into one response.
// Only the primary status call is load-bearing; health and disk space
// degrade to empty lists when the backend misbehaves.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	statusResult, s1 := h.radarr.Call(r.Context(), http.MethodGet, "system/status", nil)
	healthResult, _ := h.radarr.Call(r.Context(), http.MethodGet, "health", nil)
	diskResult, _ := h.radarr.Call(r.Context(), http.MethodGet, "diskspace", nil)

	if s1 != http.StatusOK {
		respondJSON(w, s1, statusResult)
		return
	}

	m := asMap(statusResult)

	health := make([]any, 0)
	for _, item := range asList(healthResult) {
		hm := asMap(item)
		health = append(health, map[string]any{
			"source":  hm["source"],
			"type":    hm["type"],
			"message": hm["message"],
		})
	}

	diskSpace := make([]any, 0)
	for _, item := range asList(diskResult) {
		dm := asMap(item)
		diskSpace = append(diskSpace, map[string]any{
			"path":  dm["path"],
			"free":  dm["freeSpace"],
			"total": dm["totalSpace"],
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"version":    m["version"],
		"os":         m["osName"],
		"branch":     m["branch"],
		"health":     health,
		"disk_space": diskSpace,
	})
}

// downloadProgress computes completion as a percentage rounded to one
// decimal: (1 - sizeleft/size) * 100, clamping size to at least 1 so an
// unreported size cannot divide by zero.
func downloadProgress(m map[string]any) float64 {
	sizeleft := floatField(m, "sizeleft", 0)
	size := floatField(m, "size", 1)
	if size < 1 {
		size = 1
	}
	progress := (1 - sizeleft/size) * 100
	return math.Round(progress*10) / 10
}

// intQueryParam parses a positive integer query parameter with a fallback.
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
