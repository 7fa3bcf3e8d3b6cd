// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

// Package config provides layered configuration for the gateway and the CLI.
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins):
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables
//
// The loaded Config is an explicit struct constructed once in main and passed
// by pointer into the gateway router and the Radarr client at construction
// time. Request handlers never read ambient process state.
//
// Required settings (gateway): RADARR_URL, RADARR_API_KEY, PROXY_TOKEN.
// Everything else defaults.
package config

import (
	"time"
)

// Config holds all application configuration.
// Immutable after Load() and safe for concurrent read access.
type Config struct {
	Radarr  RadarrConfig  `koanf:"radarr"`
	Proxy   ProxyConfig   `koanf:"proxy"`
	Server  ServerConfig  `koanf:"server"`
	Cache   CacheConfig   `koanf:"cache"`
	CLI     CLIConfig     `koanf:"cli"`
	Logging LoggingConfig `koanf:"logging"`
}

// RadarrConfig holds the Radarr connection settings.
// The API key is held server-side only and attached to every upstream
// request; it is never exposed to gateway callers.
//
// Environment Variables:
//   - RADARR_URL: Radarr base URL (e.g., http://localhost:7878)
//   - RADARR_API_KEY: API key from Radarr Settings > General
type RadarrConfig struct {
	URL    string `koanf:"url"`
	APIKey string `koanf:"api_key"`
}

// ProxyConfig holds the shared secret authenticating the caller/gateway
// channel. The token is an opaque string compared by exact match against the
// X-Proxy-Token request header; it has no expiry and no per-route scoping.
//
// Environment Variables:
//   - PROXY_TOKEN: shared secret for the X-Proxy-Token header
type ProxyConfig struct {
	Token string `koanf:"token"`
}

// ServerConfig holds HTTP server settings for the gateway.
//
// Environment Variables:
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_PORT: bind port (default: 5000)
//   - HTTP_TIMEOUT: per-request read/write timeout (default: 30s)
//   - SHUTDOWN_TIMEOUT: graceful shutdown deadline (default: 10s)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// CacheConfig holds the local result cache settings used by the CLI.
//
// Environment Variables:
//   - RADARR_CACHE_DIR: cache root directory (default: ~/.radarr-skill/cache)
type CacheConfig struct {
	Dir string `koanf:"dir"`
}

// CLIConfig holds settings for the command-line client.
//
// Environment Variables:
//   - RADARR_GATEWAY_URL: gateway base URL (default: http://localhost:5000)
type CLIConfig struct {
	GatewayURL string `koanf:"gateway_url"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller info (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port bind address for the gateway listener.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
