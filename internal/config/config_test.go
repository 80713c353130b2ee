// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
	if cfg.Recommend.TopN != 10 || cfg.Recommend.CandidateK != 80 {
		t.Errorf("unexpected recommend defaults: %+v", cfg.Recommend)
	}
	if cfg.Embedding.Dim != 384 {
		t.Errorf("expected 384-dim embedding default, got %d", cfg.Embedding.Dim)
	}
	if cfg.TMDB.CacheSize != 1024 {
		t.Errorf("expected 1024 entry cache default, got %d", cfg.TMDB.CacheSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("TMDB_API_KEY", "secret-key")
	t.Setenv("SECURITY_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("SERVER_PORT not applied, got %d", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "secret-key" {
		t.Errorf("TMDB_API_KEY alias not applied, got %q", cfg.TMDB.APIKey)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != "https://a.example" {
		t.Errorf("CORS origins not split, got %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8080\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("file port not applied, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("file log level not applied, got %q", cfg.Logging.Level)
	}
	// Untouched values keep their defaults.
	if cfg.Recommend.TopN != 10 {
		t.Errorf("default top_n lost, got %d", cfg.Recommend.TopN)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"top_n zero", func(c *Config) { c.Recommend.TopN = 0 }},
		{"candidate_k zero", func(c *Config) { c.Recommend.CandidateK = 0 }},
		{"cache size zero", func(c *Config) { c.TMDB.CacheSize = 0 }},
		{"negative cache ttl zero", func(c *Config) { c.TMDB.NegativeCacheTTL = 0 }},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "too-short" }},
		{"embedding dim zero while enabled", func(c *Config) {
			c.Embedding.Enabled = true
			c.Embedding.Dim = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct{ in, want string }{
		{"SERVER_PORT", "server.port"},
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"TMDB_CACHE_TTL", "tmdb.cache_ttl"},
		{"RECOMMEND_TOP_N", "recommend.top_n"},
		{"LOG_LEVEL", "logging.level"},
		{"EMBEDDING_DIM", "embedding.dim"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
