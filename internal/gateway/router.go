// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

// Package gateway implements the credential-shielding HTTP surface: proxy
// token authentication, the generic Radarr passthrough, and the convenience
// routes with their stable projections.
package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abra5umente/radarr-skill/internal/config"
	"github.com/abra5umente/radarr-skill/internal/middleware"
	"github.com/abra5umente/radarr-skill/internal/radarr"
)

// Router wires the middleware stack and routes for the gateway.
type Router struct {
	cfg     *config.Config
	handler *Handler
}

// NewRouter creates a gateway router backed by the given Radarr caller.
func NewRouter(cfg *config.Config, caller radarr.Caller) *Router {
	return &Router{
		cfg:     cfg,
		handler: NewHandler(caller),
	}
}

// Setup builds the chi handler. The liveness probe and the Prometheus scrape
// endpoint sit outside the auth group; everything else requires the proxy
// token before any backend call is made.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", ProxyTokenHeader, "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.PrometheusMetrics)

	r.Get("/health", rt.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ProxyAuth(rt.cfg.Proxy.Token))
		// promhttp negotiates its own encoding, so gzip stays off /metrics
		r.Use(middleware.Compression)

		// Generic passthrough, any supported method
		r.HandleFunc("/api/*", rt.handler.Proxy)

		// Convenience routes
		r.Get("/search", rt.handler.Search)
		r.Get("/movies", rt.handler.Movies)
		r.Get("/qualityprofiles", rt.handler.QualityProfiles)
		r.Get("/movie/{id}", rt.handler.MovieDetails)
		r.Post("/movie/add", rt.handler.AddMovie)
		r.Get("/releases/{id}", rt.handler.Releases)
		r.Post("/download", rt.handler.Download)
		r.Get("/queue", rt.handler.Queue)
		r.Get("/wanted", rt.handler.Wanted)
		r.Get("/status", rt.handler.Status)
	})

	return r
}
