// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateEnv unsets every mapped variable for the duration of the test.
// t.Setenv registers the restore before the variable is removed.
func isolateEnv(t *testing.T) {
	t.Helper()
	names := []string{ConfigPathEnvVar}
	for name := range envMappings {
		names = append(names, strings.ToUpper(name))
	}
	for _, name := range names {
		t.Setenv(name, os.Getenv(name))
		os.Unsetenv(name)
	}
}

// chdirTemp moves into a fresh directory so no config.yaml is discovered.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	return dir
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Catalog.Path != "books.json" {
		t.Errorf("Catalog.Path = %q, want books.json", cfg.Catalog.Path)
	}
	if cfg.Server.Port != 50051 {
		t.Errorf("Server.Port = %d, want 50051", cfg.Server.Port)
	}
	if cfg.Recommend.Workers != 10 {
		t.Errorf("Recommend.Workers = %d, want 10", cfg.Recommend.Workers)
	}
	if cfg.Recommend.Strategy != "random" {
		t.Errorf("Recommend.Strategy = %q, want random", cfg.Recommend.Strategy)
	}
	if cfg.NATS.Enabled {
		t.Error("NATS.Enabled should be false by default")
	}
	if cfg.NATS.Subject != "recommendations.recommend" {
		t.Errorf("NATS.Subject = %q", cfg.NATS.Subject)
	}
	if cfg.Marketplace.Port != 5000 {
		t.Errorf("Marketplace.Port = %d, want 5000", cfg.Marketplace.Port)
	}
	if cfg.Marketplace.MaxResults != 3 || cfg.Marketplace.UserID != 1 {
		t.Errorf("Marketplace max/user = %d/%d, want 3/1", cfg.Marketplace.MaxResults, cfg.Marketplace.UserID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"CATALOG_PATH", "catalog.path"},
		{"DB_PATH", "catalog.path"},
		{"RECOMMENDATIONS_PORT", "server.port"},
		{"HTTP_PORT", "server.port"},
		{"RECOMMEND_WORKERS", "recommend.workers"},
		{"NATS_EMBEDDED", "nats.embedded_server"},
		{"RECOMMENDATIONS_TRANSPORT", "marketplace.transport"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	isolateEnv(t)
	tmpDir := chdirTemp(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("catalog:\n  path: x.json\n"), 0o600); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("{}"), 0o600); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if got := findConfigFile(); got != customPath {
			t.Errorf("findConfigFile() = %q, want %q", got, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateEnv(t)
	chdirTemp(t)

	t.Setenv("DB_PATH", "/data/books.json")
	t.Setenv("RECOMMENDATIONS_PORT", "6000")
	t.Setenv("RECOMMEND_WORKERS", "4")
	t.Setenv("RECOMMEND_SEED", "42")
	t.Setenv("RECOMMENDATIONS_TIMEOUT", "2s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.Path != "/data/books.json" {
		t.Errorf("Catalog.Path = %q, want /data/books.json", cfg.Catalog.Path)
	}
	if cfg.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want 6000", cfg.Server.Port)
	}
	if cfg.Recommend.Workers != 4 {
		t.Errorf("Recommend.Workers = %d, want 4", cfg.Recommend.Workers)
	}
	if cfg.Recommend.Seed != 42 {
		t.Errorf("Recommend.Seed = %d, want 42", cfg.Recommend.Seed)
	}
	if cfg.Marketplace.RequestTimeout != 2*time.Second {
		t.Errorf("Marketplace.RequestTimeout = %v, want 2s", cfg.Marketplace.RequestTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "http://b.test" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Defaults still apply for unset values.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.RecommendationsURL() != "http://localhost:6000" {
		t.Errorf("RecommendationsURL() = %q", cfg.RecommendationsURL())
	}
}

func TestLoadWithKoanf_PreferredEnv(t *testing.T) {
	isolateEnv(t)
	chdirTemp(t)

	t.Setenv("DB_PATH", "legacy.json")
	t.Setenv("CATALOG_PATH", "preferred.json")
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("RECOMMENDATIONS_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Catalog.Path != "preferred.json" {
		t.Errorf("Catalog.Path = %q, want preferred.json", cfg.Catalog.Path)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolateEnv(t)
	dir := chdirTemp(t)

	configContent := `
catalog:
  path: /srv/books.json
server:
  port: 50052
recommend:
  workers: 20
nats:
  enabled: true
  embedded_server: true
  port: 4333
marketplace:
  transport: nats
  max_results: 5
logging:
  format: console
`
	configPath := filepath.Join(dir, "bookshelf.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	// Environment beats the file.
	t.Setenv("MARKETPLACE_MAX_RESULTS", "7")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.Path != "/srv/books.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Server.Port != 50052 {
		t.Errorf("Server.Port = %d, want 50052", cfg.Server.Port)
	}
	if cfg.Recommend.Workers != 20 {
		t.Errorf("Recommend.Workers = %d, want 20", cfg.Recommend.Workers)
	}
	if !cfg.NATS.Enabled || cfg.NATS.Port != 4333 {
		t.Errorf("NATS = %+v", cfg.NATS)
	}
	if cfg.Marketplace.Transport != "nats" {
		t.Errorf("Marketplace.Transport = %q, want nats", cfg.Marketplace.Transport)
	}
	if cfg.Marketplace.MaxResults != 7 {
		t.Errorf("Marketplace.MaxResults = %d, want 7", cfg.Marketplace.MaxResults)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	// Untouched defaults survive the file layer.
	if cfg.NATS.Subject != "recommendations.recommend" {
		t.Errorf("NATS.Subject = %q", cfg.NATS.Subject)
	}
}

func TestLoadWithKoanf_ValidationError(t *testing.T) {
	isolateEnv(t)
	chdirTemp(t)

	t.Setenv("RECOMMEND_WORKERS", "0")

	_, err := LoadWithKoanf()
	if err == nil || !strings.Contains(err.Error(), "RECOMMEND_WORKERS") {
		t.Errorf("LoadWithKoanf() error = %v, want RECOMMEND_WORKERS validation error", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolateEnv(t)
	dir := chdirTemp(t)

	content := "CATALOG_PATH=from-dotenv.json\nLOG_LEVEL=warn\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	// Existing variables are not overridden.
	t.Setenv("LOG_LEVEL", "error")

	LoadDotEnv()
	t.Cleanup(func() { os.Unsetenv("CATALOG_PATH") })

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Catalog.Path != "from-dotenv.json" {
		t.Errorf("Catalog.Path = %q, want from-dotenv.json", cfg.Catalog.Path)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error", cfg.Logging.Level)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	isolateEnv(t)
	chdirTemp(t)

	// No .env present: must not panic or error.
	LoadDotEnv()
}
