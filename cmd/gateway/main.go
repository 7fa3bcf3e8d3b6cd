// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

// Package main is the entry point for the gateway server.
//
// The gateway sits between an untrusted caller and a private Radarr
// instance: it authenticates callers with a shared proxy token, attaches
// the Radarr API key server-side, and reshapes responses into compact
// stable schemas. The key never leaves this process.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (RADARR_URL, RADARR_API_KEY, PROXY_TOKEN,
//     HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, CORS_ORIGINS,
//     LOG_LEVEL, LOG_FORMAT)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections and waits for in-flight requests up to
// SHUTDOWN_TIMEOUT.
//
// # Example Usage
//
//	export RADARR_URL=http://localhost:7878
//	export RADARR_API_KEY=your-radarr-api-key
//	export PROXY_TOKEN=$(openssl rand -hex 32)
//	./gateway
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abra5umente/radarr-skill/internal/config"
	"github.com/abra5umente/radarr-skill/internal/gateway"
	"github.com/abra5umente/radarr-skill/internal/logging"
	"github.com/abra5umente/radarr-skill/internal/radarr"
	"github.com/abra5umente/radarr-skill/internal/supervisor"
	"github.com/abra5umente/radarr-skill/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("radarr_url", cfg.Radarr.URL).
		Str("addr", cfg.Server.Addr()).
		Msg("Configuration loaded")

	client := radarr.NewClient(&cfg.Radarr, cfg.Server.Timeout)
	router := gateway.NewRouter(cfg, client)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeConfig)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting gateway")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor finishes
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Gateway stopped gracefully")
}
