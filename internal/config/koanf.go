// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/showfinder/config.yaml",
	"/etc/showfinder/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. These match the
// deployment constants the recommendation pipeline was tuned with: 384-dim
// embeddings, 80 nearest-neighbor candidates, top 10 results, 6h/2m
// enrichment cache TTLs.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8643,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Path:       "/data/showfinder",
			GCInterval: 10 * time.Minute,
		},
		TMDB: TMDBConfig{
			APIKey:           "", // Enrichment disabled unless configured
			BaseURL:          "https://api.themoviedb.org/3",
			ImageBaseURL:     "https://image.tmdb.org/t/p/w500",
			ConnectTimeout:   2 * time.Second,
			RequestTimeout:   5 * time.Second,
			CacheTTL:         6 * time.Hour,
			CacheSize:        1024,
			NegativeCacheTTL: 2 * time.Minute,
			RatePerSecond:    20,
		},
		Embedding: EmbeddingConfig{
			Enabled: false,
			BaseURL: "",
			APIKey:  "",
			Model:   "all-MiniLM-L6-v2",
			Dim:     384,
		},
		Recommend: RecommendConfig{
			TopN:       10,
			CandidateK: 80,
		},
		Security: SecurityConfig{
			JWTSecret:       "", // Auth routes disabled unless configured
			TokenTTL:        24 * time.Hour,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
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

// configSections are the recognized top-level sections for environment
// variable mapping.
var configSections = []string{
	"server", "logging", "catalog", "tmdb", "embedding", "recommend", "security",
}

// envTransformFunc maps environment variable names to koanf config paths.
// The first underscore-delimited segment selects the section; the remainder
// is the key within it:
//
//	TMDB_API_KEY        -> tmdb.api_key
//	SERVER_PORT         -> server.port
//	RECOMMEND_TOP_N     -> recommend.top_n
//	LOG_LEVEL           -> logging.level (legacy alias)
//
// Unrecognized variables are ignored.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	// Legacy aliases kept from the first deployment
	switch key {
	case "log_level":
		return "logging.level"
	case "log_format":
		return "logging.format"
	case "tmdb_api_key":
		return "tmdb.api_key"
	}

	for _, section := range configSections {
		prefix := section + "_"
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			return section + "." + key[len(prefix):]
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// supplied via environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for known
// slice fields. Env vars arrive as plain strings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
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
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}
