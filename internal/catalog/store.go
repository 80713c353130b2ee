// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package catalog provides the embedded show store. Shows are persisted in
// BadgerDB as JSON values, embedding vector included, so a single directory
// holds both the catalog and its semantic index.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/showfinder/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	showKeyPrefix = "show:"
)

// ErrNotFound is returned when a show does not exist in the store.
var ErrNotFound = errors.New("show not found")

// Store is a BadgerDB-backed show catalog.
//
// Vector search is a brute-force scan over embedded rows. The catalog is a
// few thousand shows at most, so a scan stays well under a millisecond and
// avoids carrying a separate index that can drift from the data.
type Store struct {
	db  *badger.DB
	dim int
}

// Open opens (or creates) a catalog store at path. An empty path opens an
// in-memory store, used by tests and demo mode. dim is the expected
// embedding dimension; rows with a different dimension are ignored by
// vector search.
func Open(path string, dim int) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}
	return &Store{db: db, dim: dim}, nil
}

// NewWithDB wraps an existing Badger handle. The caller keeps ownership of
// the handle's lifecycle.
func NewWithDB(db *badger.DB, dim int) *Store {
	return &Store{db: db, dim: dim}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying Badger handle so other stores (users,
// watchlists) can share one directory.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Dim returns the embedding dimension the store was opened with.
func (s *Store) Dim() int {
	return s.dim
}

// Put inserts or replaces a show record.
func (s *Store) Put(ctx context.Context, show *models.ShowRecord) error {
	if show.ID == "" {
		return fmt.Errorf("put show: empty ID")
	}
	data, err := json.Marshal(show)
	if err != nil {
		return fmt.Errorf("marshal show %s: %w", show.ID, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(showKeyPrefix+show.ID), data)
	})
}

// Get retrieves a show by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.ShowRecord, error) {
	var show models.ShowRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(showKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get show %s: %w", id, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &show)
		})
	})
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// All returns every show in the catalog, unordered beyond key order.
func (s *Store) All(ctx context.Context) ([]models.ShowRecord, error) {
	var shows []models.ShowRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(showKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				var show models.ShowRecord
				if err := json.Unmarshal(val, &show); err != nil {
					return fmt.Errorf("decode show %s: %w", it.Item().Key(), err)
				}
				shows = append(shows, show)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// Count returns the number of shows in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(showKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// scored pairs a show with its vector distance during nearest-neighbor search.
type scored struct {
	show     models.ShowRecord
	distance float64
}

// NearestByVector returns up to k embedded shows ordered by ascending cosine
// distance to the query vector (smaller distance is more similar). Rows
// without an embedding, or with an embedding of a different dimension, are
// skipped.
func (s *Store) NearestByVector(ctx context.Context, vec []float32, k int) ([]models.ShowRecord, error) {
	if k < 1 {
		k = 1
	}

	var candidates []scored
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(showKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				var show models.ShowRecord
				if err := json.Unmarshal(val, &show); err != nil {
					return fmt.Errorf("decode show %s: %w", it.Item().Key(), err)
				}
				if len(show.Embedding) != len(vec) {
					return nil
				}
				candidates = append(candidates, scored{
					show:     show,
					distance: CosineDistance(vec, show.Embedding),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	shows := make([]models.ShowRecord, len(candidates))
	for i, c := range candidates {
		shows[i] = c.show
	}
	return shows, nil
}

// NearestByVectorWithDistance is NearestByVector but keeps the distances,
// for the semantic search endpoints.
func (s *Store) NearestByVectorWithDistance(ctx context.Context, vec []float32, k int) ([]models.ShowRecord, []float64, error) {
	shows, err := s.NearestByVector(ctx, vec, k)
	if err != nil {
		return nil, nil, err
	}
	distances := make([]float64, len(shows))
	for i := range shows {
		distances[i] = CosineDistance(vec, shows[i].Embedding)
	}
	return shows, distances, nil
}

// RunGC runs one round of Badger value log garbage collection. Returns
// badger.ErrNoRewrite when there was nothing to collect; callers treat that
// as success.
func (s *Store) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}
