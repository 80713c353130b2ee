// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package tmdb is the cached gateway to the external show metadata provider.
// It layers a positive LRU+TTL cache and a negative "known absent" cache over
// a rate-limited, circuit-broken HTTP client. Every failure mode degrades to
// an absent or unavailable lookup; enrichment never fails a recommendation.
package tmdb

import (
	"context"
	"strconv"

	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/logging"
)

// LookupStatus describes the outcome of an enrichment lookup.
type LookupStatus int

const (
	// StatusFound means metadata was returned, from cache or the provider.
	StatusFound LookupStatus = iota

	// StatusAbsent means the provider confirmed it has no match, or
	// enrichment is disabled. Absent outcomes are negative-cached.
	StatusAbsent

	// StatusUnavailable means the provider could not be reached this call.
	// Nothing is cached; the next lookup tries again.
	StatusUnavailable
)

// provider is the outbound surface the gateway needs. *Client satisfies it;
// tests substitute a stub.
type provider interface {
	SearchTV(ctx context.Context, title string, year int) (*Enrichment, error)
	GetByID(ctx context.Context, id int64) (*Enrichment, error)
}

// Gateway resolves show metadata through the two-tier cache.
type Gateway struct {
	provider provider
	cache    *twoTierCache
	enabled  bool
}

// NewGateway creates a gateway from configuration. An empty API key disables
// provider calls entirely; lookups then report absent without touching the
// network.
func NewGateway(cfg config.TMDBConfig) *Gateway {
	g := &Gateway{
		cache:   newTwoTierCache(cfg.CacheSize, cfg.CacheTTL, cfg.NegativeCacheTTL),
		enabled: cfg.APIKey != "",
	}
	if g.enabled {
		g.provider = NewClient(cfg)
	} else {
		logging.Warn().Msg("no TMDB API key configured, enrichment disabled")
	}
	return g
}

func newGatewayWithProvider(p provider, cache *twoTierCache) *Gateway {
	return &Gateway{provider: p, cache: cache, enabled: p != nil}
}

// Lookup resolves metadata for a show. A positive TMDB id takes precedence
// over title search. Both the id key and the query key are checked on read
// and written on success, so a search result later serves id lookups too.
func (g *Gateway) Lookup(ctx context.Context, title string, tmdbID int64, year int) (*Enrichment, LookupStatus) {
	keys := cacheKeys(title, tmdbID, year)
	if len(keys) == 0 {
		return nil, StatusAbsent
	}

	if enrichment, negative, hit := g.cache.get(keys); hit {
		if negative {
			return nil, StatusAbsent
		}
		return enrichment, StatusFound
	}

	if !g.enabled {
		return nil, StatusAbsent
	}

	var (
		enrichment *Enrichment
		err        error
	)
	if tmdbID > 0 {
		enrichment, err = g.provider.GetByID(ctx, tmdbID)
	} else {
		enrichment, err = g.provider.SearchTV(ctx, title, year)
	}
	if err != nil {
		logging.Debug().Err(err).Str("title", title).Msg("metadata provider unavailable")
		return nil, StatusUnavailable
	}
	if enrichment == nil {
		g.cache.put(keys, nil)
		return nil, StatusAbsent
	}

	// Also index under the id the provider reported, so a later id lookup
	// for the same show hits without a search.
	writeKeys := keys
	if enrichment.TMDBID > 0 {
		writeKeys = appendUnique(writeKeys, idKey(enrichment.TMDBID))
	}
	g.cache.put(writeKeys, enrichment)
	return enrichment, StatusFound
}

// CacheStats reports cache counters and sizes.
func (g *Gateway) CacheStats() Stats {
	return g.cache.stats()
}

// ClearCache empties both cache tiers and resets counters.
func (g *Gateway) ClearCache() {
	g.cache.clear()
	logging.Info().Msg("enrichment cache cleared")
}

// Enabled reports whether provider calls are configured.
func (g *Gateway) Enabled() bool {
	return g.enabled
}

func cacheKeys(title string, tmdbID int64, year int) []string {
	var keys []string
	if tmdbID > 0 {
		keys = append(keys, idKey(tmdbID))
	}
	if norm := normalizeTitle(title); norm != "" {
		keys = append(keys, "query:"+norm+"|year:"+strconv.Itoa(year))
	}
	return keys
}

func idKey(id int64) string {
	return "id:" + strconv.FormatInt(id, 10)
}

func appendUnique(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}
