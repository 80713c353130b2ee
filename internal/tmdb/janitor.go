// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package tmdb

import (
	"context"
	"time"
)

// Janitor periodically sweeps expired cache entries. Expiry is lazy on the
// read path; without the sweep, negative keys for titles nobody asks about
// again would sit in the map until Clear. Implements suture.Service.
type Janitor struct {
	gateway  *Gateway
	interval time.Duration
}

// NewJanitor creates a cache janitor for the gateway.
func NewJanitor(gateway *Gateway, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{gateway: gateway, interval: interval}
}

// String identifies the service in supervisor logs.
func (j *Janitor) String() string {
	return "tmdb-cache-janitor"
}

// Serve sweeps until the context is cancelled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.gateway.cache.purgeExpired()
		}
	}
}
