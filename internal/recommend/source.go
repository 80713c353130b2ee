// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package recommend

import (
	"context"
	"strings"

	"github.com/tomtom215/showfinder/internal/catalog"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
)

// Source supplies the bounded candidate pool for one request. Priority:
// vector search when the query has free text and embeddings line up, an
// unranked catalog scan otherwise, and the bundled static catalog when the
// store yields nothing. This stage never fails; absence of data degrades to
// the static fallback.
type Source struct {
	store      CandidateStore
	encoder    Encoder
	candidateK int
}

// NewSource creates a candidate source. Both store and encoder may be nil.
func NewSource(store CandidateStore, encoder Encoder, candidateK int) *Source {
	if candidateK <= 0 {
		candidateK = 80
	}
	return &Source{store: store, encoder: encoder, candidateK: candidateK}
}

// Candidates returns the candidate pool for the query.
func (s *Source) Candidates(ctx context.Context, query *models.PreferenceQuery) []models.ShowRecord {
	var shows []models.ShowRecord

	if text := strings.TrimSpace(query.Query); text != "" && s.store != nil && s.encoder != nil {
		shows = s.vectorCandidates(ctx, text)
	}

	if len(shows) == 0 && s.store != nil {
		rows, err := s.store.All(ctx)
		if err != nil {
			// Recommendations still work with the store down.
			logging.Warn().Err(err).Msg("catalog scan failed, falling back to static catalog")
			rows = nil
		} else if len(rows) > 0 {
			metrics.CandidateSourceTotal.WithLabelValues("scan").Inc()
		}
		shows = rows
	}

	if len(shows) == 0 {
		metrics.CandidateSourceTotal.WithLabelValues("static").Inc()
		shows = catalog.StaticCatalog()
	}
	return shows
}

// vectorCandidates runs nearest-neighbor search for the free-text query.
// Any failure, including an encoder vector of the wrong dimension, returns
// nil so the caller falls through to the unranked scan.
func (s *Source) vectorCandidates(ctx context.Context, text string) []models.ShowRecord {
	vec, err := s.encoder.Encode(ctx, text)
	if err != nil {
		logging.Warn().Err(err).Msg("query embedding failed, skipping vector search")
		return nil
	}
	if len(vec) != s.store.Dim() {
		logging.Warn().
			Int("got", len(vec)).
			Int("want", s.store.Dim()).
			Msg("embedding dimension mismatch, skipping vector search")
		return nil
	}

	rows, err := s.store.NearestByVector(ctx, vec, s.candidateK)
	if err != nil {
		logging.Warn().Err(err).Msg("vector search failed, skipping")
		return nil
	}
	if len(rows) > 0 {
		metrics.CandidateSourceTotal.WithLabelValues("vector").Inc()
	}
	return rows
}
