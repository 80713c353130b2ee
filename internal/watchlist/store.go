// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package watchlist persists per-user saved shows.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
)

// ErrNotFound is returned when removing a show that is not on the list.
var ErrNotFound = errors.New("watchlist entry not found")

// Entry is one saved show on a user's watchlist.
type Entry struct {
	ShowID  string    `json:"show_id"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"added_at"`
}

// Store persists watchlists in Badger under "watchlist:<user>:<show>" keys,
// so one prefix scan lists a user's entries.
type Store struct {
	db *badger.DB
}

// NewStore creates a watchlist store on an open database.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

func entryKey(userID, showID string) []byte {
	return []byte("watchlist:" + userID + ":" + showID)
}

// Add saves a show to the user's watchlist. Adding an already-saved show is
// idempotent and keeps the original AddedAt.
func (s *Store) Add(ctx context.Context, userID, showID, title string) (*Entry, error) {
	key := entryKey(userID, showID)

	var entry Entry
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == nil {
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		entry = Entry{ShowID: showID, Title: title, AddedAt: time.Now().UTC()}
		data, err := json.Marshal(&entry)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, fmt.Errorf("add watchlist entry: %w", err)
	}
	return &entry, nil
}

// Remove deletes a show from the user's watchlist. Removing a show that is
// not on the list returns ErrNotFound.
func (s *Store) Remove(ctx context.Context, userID, showID string) error {
	key := entryKey(userID, showID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove watchlist entry: %w", err)
	}
	return nil
}

// List returns the user's watchlist, most recently added first.
func (s *Store) List(ctx context.Context, userID string) ([]Entry, error) {
	prefix := []byte("watchlist:" + userID + ":")

	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AddedAt.After(entries[j].AddedAt)
	})
	return entries, nil
}
