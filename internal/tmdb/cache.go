// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package tmdb

import (
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/showfinder/internal/metrics"
)

// twoTierCache holds the process-wide enrichment cache state: a positive
// LRU+TTL cache of successful lookups and a negative TTL cache of confirmed
// "no result" keys. A single mutex guards both tiers and the hit/miss
// counters so check-then-write sequences stay consistent under concurrent
// requests. Duplicate in-flight provider calls are acceptable; divergent
// cache state is not.
type twoTierCache struct {
	mu sync.Mutex

	capacity    int
	positiveTTL time.Duration
	negativeTTL time.Duration

	// Positive tier: doubly-linked list ordered by recency plus a map for
	// O(1) lookup. head.next is most recently used.
	items map[string]*cacheEntry
	head  *cacheEntry
	tail  *cacheEntry

	// Negative tier: key -> expiry.
	negative map[string]time.Time

	hits   int64
	misses int64
}

// cacheEntry is a node in the positive tier.
type cacheEntry struct {
	key       string
	value     *Enrichment
	expiresAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

func newTwoTierCache(capacity int, positiveTTL, negativeTTL time.Duration) *twoTierCache {
	if capacity <= 0 {
		capacity = 1024
	}
	c := &twoTierCache{
		capacity:    capacity,
		positiveTTL: positiveTTL,
		negativeTTL: negativeTTL,
		items:       make(map[string]*cacheEntry, capacity),
		head:        &cacheEntry{},
		tail:        &cacheEntry{},
		negative:    make(map[string]time.Time),
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// get consults the positive tier for every key, then the negative tier.
// Returns (enrichment, negative, hit). A positive hit refreshes recency.
func (c *twoTierCache) get(keys []string) (*Enrichment, bool, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if entry, ok := c.items[key]; ok {
			if now.After(entry.expiresAt) {
				c.removeEntry(entry)
				continue
			}
			c.moveToFront(entry)
			c.hits++
			metrics.EnrichmentCacheHits.Inc()
			return entry.value, false, true
		}
	}

	for _, key := range keys {
		if expiry, ok := c.negative[key]; ok {
			if now.After(expiry) {
				delete(c.negative, key)
				continue
			}
			c.hits++
			metrics.EnrichmentCacheHits.Inc()
			return nil, true, true
		}
	}

	c.misses++
	metrics.EnrichmentCacheMisses.Inc()
	return nil, false, false
}

// put stores a lookup outcome under every key. A nil value records a
// confirmed absence in the negative tier.
func (c *twoTierCache) put(keys []string, value *Enrichment) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if value == nil {
		if len(c.negative) >= c.capacity {
			c.purgeNegativeLocked(now)
		}
		for _, key := range keys {
			c.negative[key] = now.Add(c.negativeTTL)
		}
		return
	}

	for _, key := range keys {
		// A successful fetch supersedes any negative entry.
		delete(c.negative, key)

		if entry, ok := c.items[key]; ok {
			entry.value = value
			entry.expiresAt = now.Add(c.positiveTTL)
			c.moveToFront(entry)
			continue
		}

		entry := &cacheEntry{key: key, value: value, expiresAt: now.Add(c.positiveTTL)}
		c.items[key] = entry
		c.pushFront(entry)

		if len(c.items) > c.capacity {
			c.evictOldestLocked()
		}
	}
}

// clear resets both tiers and the counters atomically.
func (c *twoTierCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.negative = make(map[string]time.Time)
	c.hits = 0
	c.misses = 0
}

// Stats is a point-in-time snapshot of cache counters and sizes.
type Stats struct {
	Hits            int64 `json:"hits"`
	Misses          int64 `json:"misses"`
	PositiveEntries int   `json:"positive_entries"`
	NegativeEntries int   `json:"negative_entries"`
}

func (c *twoTierCache) stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:            c.hits,
		Misses:          c.misses,
		PositiveEntries: len(c.items),
		NegativeEntries: len(c.negative),
	}
}

// purgeExpired drops expired entries from both tiers. Expiry is otherwise
// lazy; the janitor calls this to keep the negative tier from accumulating
// dead keys between lookups.
func (c *twoTierCache) purgeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
		}
		entry = prev
	}
	c.purgeNegativeLocked(now)
}

func (c *twoTierCache) purgeNegativeLocked(now time.Time) {
	for key, expiry := range c.negative {
		if now.After(expiry) {
			delete(c.negative, key)
		}
	}
}

func (c *twoTierCache) pushFront(entry *cacheEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *twoTierCache) moveToFront(entry *cacheEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.pushFront(entry)
}

func (c *twoTierCache) removeEntry(entry *cacheEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *twoTierCache) evictOldestLocked() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	metrics.EnrichmentCacheEvictions.Inc()
}

// normalizeTitle lowercases a title and collapses runs of whitespace, so
// "The  Office " and "the office" share a cache key.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
