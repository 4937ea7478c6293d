// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all configuration for both binaries. Each binary reads the
// sections it needs.
type Config struct {
	Catalog     CatalogConfig     `koanf:"catalog"`
	Server      ServerConfig      `koanf:"server"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	NATS        NATSConfig        `koanf:"nats"`
	Marketplace MarketplaceConfig `koanf:"marketplace"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// CatalogConfig locates the book catalog.
//
// Environment Variables:
//   - CATALOG_PATH or DB_PATH: path to the catalog JSON file (default: books.json)
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// ServerConfig holds the recommendations RPC listener settings. The
// marketplace uses Port as the port to dial.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// Workers is the number of Recommend calls served concurrently.
	// Default: 10
	Workers int `koanf:"workers"`

	// Strategy selects the algorithm. Only "random" is implemented.
	Strategy string `koanf:"strategy"`

	// Seed fixes the random sequence when non-zero.
	Seed uint64 `koanf:"seed"`
}

// NATSConfig holds the optional request/reply transport settings.
//
// Environment Variables:
//   - NATS_ENABLED: serve Recommend over NATS as well as HTTP (default: false)
//   - NATS_EMBEDDED: run an in-process nats-server (default: true)
//   - NATS_URL: external server URL when NATS_EMBEDDED=false
type NATSConfig struct {
	Enabled        bool          `koanf:"enabled"`
	URL            string        `koanf:"url"`
	EmbeddedServer bool          `koanf:"embedded_server"`
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	Subject        string        `koanf:"subject"`
	QueueGroup     string        `koanf:"queue_group"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// MarketplaceConfig holds the storefront settings.
type MarketplaceConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// RecommendationsHost is the host running the recommendations service.
	RecommendationsHost string `koanf:"recommendations_host"`

	// Transport is how the marketplace reaches it: http or nats.
	Transport string `koanf:"transport"`

	RequestTimeout time.Duration `koanf:"request_timeout"`
	MaxResults     int           `koanf:"max_results"`
	UserID         int64         `koanf:"user_id"`
}

// Addr returns host:port for the storefront listener.
func (m MarketplaceConfig) Addr() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

// SecurityConfig holds HTTP security settings.
type SecurityConfig struct {
	// CORSOrigins lists allowed origins. "*" allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendationsURL returns the base URL the marketplace dials over HTTP.
func (c *Config) RecommendationsURL() string {
	return "http://" + net.JoinHostPort(c.Marketplace.RecommendationsHost, strconv.Itoa(c.Server.Port))
}

// Load reads configuration from defaults, the optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
