// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/showfinder/internal/models"
)

func openTestStore(t *testing.T, dim int) *Store {
	t.Helper()
	store, err := Open("", dim)
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetRoundtrip(t *testing.T) {
	store := openTestStore(t, 3)
	ctx := context.Background()

	show := &models.ShowRecord{
		ID:            "tmdb-100",
		TMDBID:        100,
		Title:         "Severance",
		Overview:      "Work-life balance, surgically enforced.",
		Genres:        models.GenreList{"drama", "mystery", "sci-fi"},
		ContentRating: "TV-MA",
		EpisodeLength: 50,
		Seasons:       2,
		Language:      "en",
		Embedding:     []float32{0.1, 0.2, 0.3},
	}
	if err := store.Put(ctx, show); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "tmdb-100")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Severance" || got.Seasons != 2 || len(got.Embedding) != 3 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if len(got.Genres) != 3 || got.Genres[0] != "drama" {
		t.Errorf("genres mismatch: %v", got.Genres)
	}
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	store := openTestStore(t, 3)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPutEmptyIDRejected(t *testing.T) {
	store := openTestStore(t, 3)

	if err := store.Put(context.Background(), &models.ShowRecord{Title: "No ID"}); err == nil {
		t.Error("expected error for empty ID")
	}
}

func TestAllAndCount(t *testing.T) {
	store := openTestStore(t, 3)
	ctx := context.Background()

	for _, rec := range StaticCatalog() {
		r := rec
		if err := store.Put(ctx, &r); err != nil {
			t.Fatalf("put %s: %v", r.ID, err)
		}
	}

	shows, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(shows) != 6 {
		t.Errorf("expected 6 shows, got %d", len(shows))
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 6 {
		t.Errorf("expected count 6, got %d", count)
	}
}

func TestNearestByVectorOrdering(t *testing.T) {
	store := openTestStore(t, 3)
	ctx := context.Background()

	shows := []models.ShowRecord{
		{ID: "exact", Title: "Exact", Embedding: []float32{1, 0, 0}},
		{ID: "close", Title: "Close", Embedding: []float32{0.9, 0.1, 0}},
		{ID: "far", Title: "Far", Embedding: []float32{0, 0, 1}},
		{ID: "no-embedding", Title: "Skipped"},
		{ID: "wrong-dim", Title: "Skipped Too", Embedding: []float32{1, 0}},
	}
	for i := range shows {
		if err := store.Put(ctx, &shows[i]); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	got, err := store.NearestByVector(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 embedded shows, got %d", len(got))
	}
	if got[0].ID != "exact" || got[1].ID != "close" || got[2].ID != "far" {
		t.Errorf("wrong order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestNearestByVectorTruncatesToK(t *testing.T) {
	store := openTestStore(t, 2)
	ctx := context.Background()

	for _, rec := range []models.ShowRecord{
		{ID: "a", Embedding: []float32{1, 0}},
		{ID: "b", Embedding: []float32{0.9, 0.1}},
		{ID: "c", Embedding: []float32{0, 1}},
	} {
		r := rec
		if err := store.Put(ctx, &r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.NearestByVector(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected k=2 results, got %d", len(got))
	}
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 0},
		{"orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 1},
		{"opposite", []float32{1, 0, 0}, []float32{-1, 0, 0}, 2},
		{"zero vector", []float32{0, 0, 0}, []float32{1, 0, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineDistance(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CosineDistance = %v, want %v", got, tt.want)
			}
		})
	}
}
