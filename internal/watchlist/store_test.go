// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package watchlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestAddAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", "show-a", "Show A"); err != nil {
		t.Fatalf("add: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.Add(ctx, "u1", "show-b", "Show B"); err != nil {
		t.Fatalf("add: %v", err)
	}

	entries, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ShowID != "show-b" {
		t.Errorf("most recent first: got %q", entries[0].ShowID)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, "u1", "show-a", "Show A")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := store.Add(ctx, "u1", "show-a", "Show A")
	if err != nil {
		t.Fatal(err)
	}

	if !first.AddedAt.Equal(second.AddedAt) {
		t.Errorf("re-add must keep original AddedAt: %v vs %v", first.AddedAt, second.AddedAt)
	}

	entries, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after duplicate add, got %d", len(entries))
	}
}

func TestRemove(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", "show-a", "Show A"); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, "u1", "show-a"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	entries, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty watchlist, got %d entries", len(entries))
	}
}

func TestRemoveMissingReturnsErrNotFound(t *testing.T) {
	store := testStore(t)

	if err := store.Remove(context.Background(), "u1", "never-added"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListsAreIsolatedPerUser(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", "show-a", "Show A"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add(ctx, "u2", "show-b", "Show B"); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ShowID != "show-a" {
		t.Errorf("u1 watchlist leaked: %+v", entries)
	}
}
