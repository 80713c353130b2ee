// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package config provides layered configuration for Showfinder using Koanf v2.
//
// Precedence (highest wins): environment variables > YAML config file >
// built-in defaults. See koanf.go for the loading mechanics.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig holds the embedded show store settings.
type CatalogConfig struct {
	// Path is the BadgerDB directory. Empty means in-memory (tests, demos).
	Path string `koanf:"path"`

	// GCInterval is how often the value log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// TMDBConfig holds settings for the external metadata provider.
// An empty APIKey disables enrichment entirely; the recommendation
// pipeline must work without it.
type TMDBConfig struct {
	APIKey       string `koanf:"api_key"`
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`

	// ConnectTimeout bounds connection establishment, RequestTimeout the
	// whole call. Short on purpose: one slow provider must not stall a
	// recommendation request.
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// CacheTTL and CacheSize govern the positive cache; NegativeCacheTTL
	// governs the "known absent" cache.
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	CacheSize        int           `koanf:"cache_size"`
	NegativeCacheTTL time.Duration `koanf:"negative_cache_ttl"`

	// RatePerSecond caps outbound provider calls. 0 disables the limiter.
	RatePerSecond float64 `koanf:"rate_per_second"`
}

// EmbeddingConfig holds settings for the embedding inference service.
// The service is any OpenAI-compatible embeddings endpoint; a locally
// hosted MiniLM server works as well as the hosted API.
type EmbeddingConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`

	// Dim is the expected vector dimension. Vectors of any other length
	// disable similarity search for the request.
	Dim int `koanf:"dim"`
}

// RecommendConfig holds recommendation pipeline settings.
type RecommendConfig struct {
	// TopN is the default number of results returned (minimum 1).
	TopN int `koanf:"top_n"`

	// CandidateK bounds the nearest-neighbor candidate pool.
	CandidateK int `koanf:"candidate_k"`
}

// SecurityConfig holds auth and API protection settings.
type SecurityConfig struct {
	JWTSecret       string        `koanf:"jwt_secret"`
	TokenTTL        time.Duration `koanf:"token_ttl"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Recommend.TopN < 1 {
		return fmt.Errorf("recommend.top_n must be >= 1, got %d", c.Recommend.TopN)
	}
	if c.Recommend.CandidateK < 1 {
		return fmt.Errorf("recommend.candidate_k must be >= 1, got %d", c.Recommend.CandidateK)
	}
	if c.Embedding.Enabled && c.Embedding.Dim < 1 {
		return fmt.Errorf("embedding.dim must be >= 1 when embedding is enabled, got %d", c.Embedding.Dim)
	}
	if c.TMDB.CacheSize < 1 {
		return fmt.Errorf("tmdb.cache_size must be >= 1, got %d", c.TMDB.CacheSize)
	}
	if c.TMDB.CacheTTL <= 0 || c.TMDB.NegativeCacheTTL <= 0 {
		return fmt.Errorf("tmdb cache TTLs must be positive")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	return nil
}
