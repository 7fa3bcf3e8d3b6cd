// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the fields the gateway requires.
// Returns an error when a required variable is missing or malformed.
func (c *Config) Validate() error {
	if err := c.validateRadarr(); err != nil {
		return err
	}
	if err := c.validateProxyToken(); err != nil {
		return err
	}
	return c.validateServer()
}

// ValidateCLI checks the fields the command-line client requires.
func (c *Config) ValidateCLI() error {
	if err := validateURL("RADARR_GATEWAY_URL", c.CLI.GatewayURL); err != nil {
		return err
	}
	if err := c.validateProxyToken(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Cache.Dir) == "" {
		return fmt.Errorf("RADARR_CACHE_DIR must not be empty")
	}
	return nil
}

func (c *Config) validateRadarr() error {
	if err := validateURL("RADARR_URL", c.Radarr.URL); err != nil {
		return err
	}
	if strings.TrimSpace(c.Radarr.APIKey) == "" {
		return fmt.Errorf("RADARR_API_KEY is required")
	}
	return nil
}

func (c *Config) validateProxyToken() error {
	if strings.TrimSpace(c.Proxy.Token) == "" {
		return fmt.Errorf("PROXY_TOKEN is required")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

// validateURL checks that value is a non-empty http(s) URL.
func validateURL(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, value)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", name, value)
	}
	return nil
}
