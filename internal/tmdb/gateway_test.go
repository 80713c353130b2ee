// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package tmdb

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubProvider is a hand-rolled provider for gateway tests.
type stubProvider struct {
	searchCalls int
	idCalls     int
	enrichment  *Enrichment
	err         error
}

func (s *stubProvider) SearchTV(ctx context.Context, title string, year int) (*Enrichment, error) {
	s.searchCalls++
	return s.enrichment, s.err
}

func (s *stubProvider) GetByID(ctx context.Context, id int64) (*Enrichment, error) {
	s.idCalls++
	return s.enrichment, s.err
}

func testCache() *twoTierCache {
	return newTwoTierCache(16, time.Hour, time.Minute)
}

func TestLookupCachesPositiveResult(t *testing.T) {
	provider := &stubProvider{enrichment: &Enrichment{TMDBID: 42, Overview: "found"}}
	gw := newGatewayWithProvider(provider, testCache())

	e1, status := gw.Lookup(context.Background(), "The Office", 0, 2005)
	if status != StatusFound || e1 == nil {
		t.Fatalf("first lookup: status=%v enrichment=%v", status, e1)
	}

	e2, status := gw.Lookup(context.Background(), "The Office", 0, 2005)
	if status != StatusFound || e2 == nil {
		t.Fatalf("second lookup: status=%v", status)
	}
	if provider.searchCalls != 1 {
		t.Errorf("second lookup must be served from cache, provider called %d times", provider.searchCalls)
	}

	stats := gw.CacheStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit / 1 miss, got %+v", stats)
	}
}

func TestLookupTitleNormalizationSharesKey(t *testing.T) {
	provider := &stubProvider{enrichment: &Enrichment{TMDBID: 1}}
	gw := newGatewayWithProvider(provider, testCache())

	gw.Lookup(context.Background(), "The  Office ", 0, 2005)
	gw.Lookup(context.Background(), "the office", 0, 2005)

	if provider.searchCalls != 1 {
		t.Errorf("normalized titles must share a cache key, provider called %d times", provider.searchCalls)
	}
}

func TestLookupNegativeCachesNoMatch(t *testing.T) {
	provider := &stubProvider{} // nil enrichment, nil error: confirmed no match
	gw := newGatewayWithProvider(provider, testCache())

	_, status := gw.Lookup(context.Background(), "Unknown Show", 0, 0)
	if status != StatusAbsent {
		t.Fatalf("expected absent, got %v", status)
	}

	_, status = gw.Lookup(context.Background(), "Unknown Show", 0, 0)
	if status != StatusAbsent {
		t.Fatalf("expected absent from negative cache, got %v", status)
	}
	if provider.searchCalls != 1 {
		t.Errorf("negative result must be cached, provider called %d times", provider.searchCalls)
	}
}

func TestLookupTransientErrorNotCached(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	gw := newGatewayWithProvider(provider, testCache())

	_, status := gw.Lookup(context.Background(), "Flaky", 0, 0)
	if status != StatusUnavailable {
		t.Fatalf("expected unavailable, got %v", status)
	}

	gw.Lookup(context.Background(), "Flaky", 0, 0)
	if provider.searchCalls != 2 {
		t.Errorf("transient errors must not be cached, provider called %d times", provider.searchCalls)
	}
}

func TestLookupByIDPrefersIDOverSearch(t *testing.T) {
	provider := &stubProvider{enrichment: &Enrichment{TMDBID: 99}}
	gw := newGatewayWithProvider(provider, testCache())

	_, status := gw.Lookup(context.Background(), "Whatever", 99, 0)
	if status != StatusFound {
		t.Fatalf("expected found, got %v", status)
	}
	if provider.idCalls != 1 || provider.searchCalls != 0 {
		t.Errorf("expected id lookup, got id=%d search=%d", provider.idCalls, provider.searchCalls)
	}
}

func TestLookupSearchResultServesLaterIDLookup(t *testing.T) {
	provider := &stubProvider{enrichment: &Enrichment{TMDBID: 7, Overview: "x"}}
	gw := newGatewayWithProvider(provider, testCache())

	gw.Lookup(context.Background(), "Some Show", 0, 0)

	_, status := gw.Lookup(context.Background(), "different title", 7, 0)
	if status != StatusFound {
		t.Fatalf("expected id-key cache hit, got %v", status)
	}
	if provider.idCalls != 0 {
		t.Errorf("id lookup should have hit the cache, provider called %d times", provider.idCalls)
	}
}

func TestLookupDisabledGatewayReportsAbsent(t *testing.T) {
	gw := newGatewayWithProvider(nil, testCache())

	e, status := gw.Lookup(context.Background(), "Anything", 0, 0)
	if status != StatusAbsent || e != nil {
		t.Fatalf("disabled gateway must report absent, got %v %v", status, e)
	}
}

func TestClearResetsCachesAndCounters(t *testing.T) {
	provider := &stubProvider{enrichment: &Enrichment{TMDBID: 1}}
	gw := newGatewayWithProvider(provider, testCache())

	gw.Lookup(context.Background(), "Show", 0, 0)
	gw.Lookup(context.Background(), "Show", 0, 0)
	gw.ClearCache()

	stats := gw.CacheStats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.PositiveEntries != 0 || stats.NegativeEntries != 0 {
		t.Errorf("clear must reset everything, got %+v", stats)
	}

	gw.Lookup(context.Background(), "Show", 0, 0)
	if provider.searchCalls != 2 {
		t.Errorf("expected provider call after clear, got %d", provider.searchCalls)
	}
}

func TestLookupEmptyTitleAndIDAbsent(t *testing.T) {
	provider := &stubProvider{enrichment: &Enrichment{TMDBID: 1}}
	gw := newGatewayWithProvider(provider, testCache())

	_, status := gw.Lookup(context.Background(), "   ", 0, 0)
	if status != StatusAbsent {
		t.Fatalf("expected absent for empty key material, got %v", status)
	}
	if provider.searchCalls != 0 {
		t.Errorf("no provider call expected, got %d", provider.searchCalls)
	}
}
