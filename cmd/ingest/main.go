// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package main is the offline catalog ingest job. It pages through the
// provider's popular TV listings, maps genre codes to names, optionally
// embeds overview text, and writes show records into the catalog store.
// Re-running is idempotent: record ids derive from the provider id.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/showfinder/internal/catalog"
	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/embedding"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/tmdb"
)

// embedBatchSize bounds one encoder request during ingest.
const embedBatchSize = 32

func main() {
	pages := flag.Int("pages", 5, "number of popular-TV pages to ingest (20 shows per page)")
	withEmbeddings := flag.Bool("embed", false, "embed overview text for ingested shows")
	flag.Parse()

	if err := run(*pages, *withEmbeddings); err != nil {
		logging.Error().Err(err).Msg("ingest failed")
		os.Exit(1)
	}
}

func run(pages int, withEmbeddings bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	if cfg.TMDB.APIKey == "" {
		return fmt.Errorf("ingest requires a TMDB API key")
	}
	if withEmbeddings && !cfg.Embedding.Enabled {
		return fmt.Errorf("-embed requires embedding to be enabled in configuration")
	}

	store, err := catalog.Open(cfg.Catalog.Path, cfg.Embedding.Dim)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	client := tmdb.NewClient(cfg.TMDB)

	var encoder *embedding.OpenAIEncoder
	if withEmbeddings {
		encoder = embedding.NewOpenAIEncoder(cfg.Embedding)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	total := 0
	for page := 1; page <= pages; page++ {
		listings, err := client.PopularTV(ctx, page)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		if len(listings) == 0 {
			break
		}

		records := make([]models.ShowRecord, 0, len(listings))
		for _, l := range listings {
			if l.Name == "" {
				continue
			}
			records = append(records, models.ShowRecord{
				ID:           "tmdb-" + strconv.FormatInt(l.ID, 10),
				TMDBID:       l.ID,
				Title:        l.Name,
				Overview:     l.Overview,
				Genres:       genreNames(l.GenreIDs),
				Language:     l.OriginalLanguage,
				Popularity:   l.Popularity,
				VoteAverage:  l.VoteAverage,
				VoteCount:    l.VoteCount,
				PosterURL:    client.PosterURL(l),
				FirstAirDate: l.FirstAirDate,
				CreatedAt:    time.Now().UTC(),
			})
		}

		if encoder != nil {
			if err := embedRecords(ctx, encoder, records, cfg.Embedding.Dim); err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
		}

		for i := range records {
			if err := store.Put(ctx, &records[i]); err != nil {
				return fmt.Errorf("store %q: %w", records[i].Title, err)
			}
		}
		total += len(records)
		logging.Info().Int("page", page).Int("shows", len(records)).Msg("page ingested")
	}

	logging.Info().Int("total", total).Msg("ingest complete")
	return nil
}

// genreNames maps provider genre codes through the fixed code table,
// dropping unknown codes.
func genreNames(codes []int64) models.GenreList {
	names := make(models.GenreList, 0, len(codes))
	for _, code := range codes {
		if name, ok := models.GenreNameForCode(code); ok {
			names = append(names, name)
		}
	}
	return names
}

// embedRecords fills Embedding for records with overview text, in batches.
// Vectors of the wrong dimension are discarded rather than stored.
func embedRecords(ctx context.Context, encoder *embedding.OpenAIEncoder, records []models.ShowRecord, dim int) error {
	var texts []string
	var indices []int
	for i := range records {
		if records[i].Overview != "" {
			texts = append(texts, records[i].Overview)
			indices = append(indices, i)
		}
	}

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := encoder.EncodeBatch(ctx, texts[start:end])
		if err != nil {
			return fmt.Errorf("embed batch: %w", err)
		}
		for j, vec := range vectors {
			if len(vec) != dim {
				logging.Warn().
					Str("title", records[indices[start+j]].Title).
					Int("got", len(vec)).
					Int("want", dim).
					Msg("discarding embedding with wrong dimension")
				continue
			}
			records[indices[start+j]].Embedding = vec
		}
	}
	return nil
}
