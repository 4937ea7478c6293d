// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookshelf/config.yaml",
	"/etc/bookshelf/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment by LoadDotEnv.
const DotEnvFile = ".env"

func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: "books.json",
		},
		Server: ServerConfig{
			Port:    50051,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Recommend: RecommendConfig{
			Workers:  10,
			Strategy: "random",
		},
		NATS: NATSConfig{
			Enabled:        false,
			URL:            "nats://127.0.0.1:4222",
			EmbeddedServer: true,
			Host:           "127.0.0.1",
			Port:           4222,
			Subject:        "recommendations.recommend",
			QueueGroup:     "recommendations",
			RequestTimeout: 5 * time.Second,
		},
		Marketplace: MarketplaceConfig{
			Host:                "0.0.0.0",
			Port:                5000,
			RecommendationsHost: "localhost",
			Transport:           "http",
			RequestTimeout:      5 * time.Second,
			MaxResults:          3,
			UserID:              1,
		},
		Security: SecurityConfig{
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadDotEnv loads DotEnvFile into the environment when present. Variables
// already set are not overridden.
func LoadDotEnv() {
	_ = godotenv.Load(DotEnvFile)
}

// LoadWithKoanf layers defaults, an optional YAML file and environment
// variables (highest priority), then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := applyPreferredEnv(k); err != nil {
		return nil, err
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lowercased environment variable names to config paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"catalog_path": "catalog.path",
	"db_path":      "catalog.path",

	"recommendations_port": "server.port",
	"http_port":            "server.port",
	"http_host":            "server.host",
	"http_timeout":         "server.timeout",

	"recommend_workers":  "recommend.workers",
	"recommend_strategy": "recommend.strategy",
	"recommend_seed":     "recommend.seed",

	"nats_enabled":         "nats.enabled",
	"nats_url":             "nats.url",
	"nats_embedded":        "nats.embedded_server",
	"nats_host":            "nats.host",
	"nats_port":            "nats.port",
	"nats_subject":         "nats.subject",
	"nats_queue_group":     "nats.queue_group",
	"nats_request_timeout": "nats.request_timeout",

	"marketplace_host":          "marketplace.host",
	"marketplace_port":          "marketplace.port",
	"recommendations_host":      "marketplace.recommendations_host",
	"recommendations_transport": "marketplace.transport",
	"recommendations_timeout":   "marketplace.request_timeout",
	"marketplace_max_results":   "marketplace.max_results",
	"marketplace_user_id":       "marketplace.user_id",

	"cors_origins": "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// preferredEnv names the variable that wins when two variables map to the
// same key. The environment provider visits variables in os.Environ order,
// so the preferred value is re-applied afterwards.
var preferredEnv = map[string]string{
	"catalog.path": "CATALOG_PATH",
	"server.port":  "RECOMMENDATIONS_PORT",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func applyPreferredEnv(k *koanf.Koanf) error {
	for path, name := range preferredEnv {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			if err := k.Set(path, v); err != nil {
				return fmt.Errorf("failed to set %s from %s: %w", path, name, err)
			}
		}
	}
	return nil
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}
