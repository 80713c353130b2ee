// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package tmdb

import (
	"fmt"
	"testing"
	"time"
)

func TestCacheLRUEviction(t *testing.T) {
	c := newTwoTierCache(2, time.Hour, time.Minute)

	c.put([]string{"a"}, &Enrichment{TMDBID: 1})
	c.put([]string{"b"}, &Enrichment{TMDBID: 2})

	// Touch "a" so "b" becomes the eviction candidate.
	if _, _, hit := c.get([]string{"a"}); !hit {
		t.Fatal("expected hit for a")
	}

	c.put([]string{"c"}, &Enrichment{TMDBID: 3})

	if _, _, hit := c.get([]string{"b"}); hit {
		t.Error("b should have been evicted as least recently used")
	}
	if _, _, hit := c.get([]string{"a"}); !hit {
		t.Error("a should survive eviction")
	}
	if _, _, hit := c.get([]string{"c"}); !hit {
		t.Error("c should be present")
	}
}

func TestCachePositiveExpiry(t *testing.T) {
	c := newTwoTierCache(8, 10*time.Millisecond, time.Minute)

	c.put([]string{"k"}, &Enrichment{TMDBID: 1})
	time.Sleep(20 * time.Millisecond)

	if _, _, hit := c.get([]string{"k"}); hit {
		t.Error("expired positive entry must not hit")
	}
}

func TestCacheNegativeExpiry(t *testing.T) {
	c := newTwoTierCache(8, time.Hour, 10*time.Millisecond)

	c.put([]string{"gone"}, nil)
	if _, negative, hit := c.get([]string{"gone"}); !hit || !negative {
		t.Fatal("expected negative hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)
	if _, _, hit := c.get([]string{"gone"}); hit {
		t.Error("expired negative entry must not hit")
	}
}

func TestCachePositiveSupersedesNegative(t *testing.T) {
	c := newTwoTierCache(8, time.Hour, time.Minute)

	c.put([]string{"k"}, nil)
	c.put([]string{"k"}, &Enrichment{TMDBID: 5})

	e, negative, hit := c.get([]string{"k"})
	if !hit || negative || e == nil || e.TMDBID != 5 {
		t.Errorf("positive write must supersede negative entry: hit=%v negative=%v e=%v", hit, negative, e)
	}
}

func TestCachePurgeExpired(t *testing.T) {
	c := newTwoTierCache(8, 5*time.Millisecond, 5*time.Millisecond)

	for i := 0; i < 4; i++ {
		c.put([]string{fmt.Sprintf("pos%d", i)}, &Enrichment{TMDBID: int64(i)})
		c.put([]string{fmt.Sprintf("neg%d", i)}, nil)
	}
	time.Sleep(15 * time.Millisecond)
	c.purgeExpired()

	stats := c.stats()
	if stats.PositiveEntries != 0 || stats.NegativeEntries != 0 {
		t.Errorf("purge should drop expired entries, got %+v", stats)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"The Office", "the office"},
		{"  The   OFFICE  ", "the office"},
		{"Dark", "dark"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
