// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package recommend implements the recommendation pipeline: candidate
// sourcing, eligibility filtering, preference scoring, ranking, and result
// assembly with best-effort metadata enrichment.
package recommend

import (
	"context"

	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/tmdb"
)

// ScoredCandidate pairs a show with its soft score and reason for one
// request. Created per candidate, discarded after ranking.
type ScoredCandidate struct {
	Record models.ShowRecord
	Score  int

	// Reason is empty when no clause applied.
	Reason string
}

// CandidateStore is the catalog surface the pipeline reads from.
// *catalog.Store satisfies it; tests substitute fakes.
type CandidateStore interface {
	// All returns every show in the catalog, unranked.
	All(ctx context.Context) ([]models.ShowRecord, error)

	// Get returns one show by id, catalog.ErrNotFound when missing.
	Get(ctx context.Context, id string) (*models.ShowRecord, error)

	// NearestByVector returns up to k shows ordered by ascending vector
	// distance from the query vector. Rows without embeddings are skipped.
	NearestByVector(ctx context.Context, vec []float32, k int) ([]models.ShowRecord, error)

	// Dim is the vector dimension the store expects.
	Dim() int
}

// Encoder turns free text into a query vector. Satisfied by
// *embedding.OpenAIEncoder.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	Dim() int
}

// Enricher resolves external show metadata. Satisfied by *tmdb.Gateway.
type Enricher interface {
	Lookup(ctx context.Context, title string, tmdbID int64, year int) (*tmdb.Enrichment, tmdb.LookupStatus)
}
