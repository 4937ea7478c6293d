// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validStrategies = map[string]bool{
	"random":       true,
	"heuristic":    true,
	"personalized": true,
}

var validTransports = map[string]bool{
	"http": true,
	"nats": true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateNATS(); err != nil {
		return err
	}
	if err := c.validateMarketplace(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("RECOMMENDATIONS_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend accepts reserved strategy names here; the recommend
// package rejects them at startup with a clearer error.
func (c *Config) validateRecommend() error {
	if c.Recommend.Workers < 1 {
		return fmt.Errorf("RECOMMEND_WORKERS must be at least 1")
	}
	if !validStrategies[strings.ToLower(c.Recommend.Strategy)] {
		return fmt.Errorf("RECOMMEND_STRATEGY must be one of: random, heuristic, personalized")
	}
	return nil
}

func (c *Config) validateNATS() error {
	if !c.NATS.Enabled && c.Marketplace.Transport != "nats" {
		return nil
	}
	if c.NATS.Subject == "" {
		return fmt.Errorf("NATS_SUBJECT is required when NATS is used")
	}
	if c.NATS.EmbeddedServer {
		if c.NATS.Port < 1 || c.NATS.Port > 65535 {
			return fmt.Errorf("NATS_PORT must be between 1 and 65535")
		}
		return nil
	}
	if !strings.HasPrefix(c.NATS.URL, "nats://") && !strings.HasPrefix(c.NATS.URL, "tls://") {
		return fmt.Errorf("NATS_URL must start with nats:// or tls://")
	}
	return nil
}

func (c *Config) validateMarketplace() error {
	m := c.Marketplace
	if m.Port < 1 || m.Port > 65535 {
		return fmt.Errorf("MARKETPLACE_PORT must be between 1 and 65535")
	}
	if m.RecommendationsHost == "" {
		return fmt.Errorf("RECOMMENDATIONS_HOST is required")
	}
	if !validTransports[m.Transport] {
		return fmt.Errorf("RECOMMENDATIONS_TRANSPORT must be one of: http, nats")
	}
	if m.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMENDATIONS_TIMEOUT must be positive")
	}
	if m.MaxResults < 0 {
		return fmt.Errorf("MARKETPLACE_MAX_RESULTS must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
