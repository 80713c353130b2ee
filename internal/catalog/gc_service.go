// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/showfinder/internal/logging"
)

// GCService runs periodic Badger value log garbage collection. It implements
// suture.Service and is supervised from cmd/server.
type GCService struct {
	store    *Store
	interval time.Duration
}

// NewGCService creates a garbage collection service for the store.
func NewGCService(store *Store, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{store: store, interval: interval}
}

// String identifies the service in supervisor logs.
func (g *GCService) String() string {
	return "catalog-gc"
}

// Serve runs the GC loop until the context is cancelled.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Badger asks callers to loop until ErrNoRewrite.
			for {
				err := g.store.RunGC()
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					logging.Debug().Err(err).Msg("catalog value log GC skipped")
					break
				}
			}
		}
	}
}
