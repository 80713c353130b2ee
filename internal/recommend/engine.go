// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package recommend

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/tmdb"
)

// Engine runs the full recommendation pipeline for one query:
// source, filter, score, rank, enrich, assemble. Safe for concurrent use;
// all per-request state lives on the stack.
type Engine struct {
	source   *Source
	enricher Enricher
	topN     int
}

// NewEngine creates a recommendation engine. enricher must not be nil; a
// gateway without credentials satisfies the interface and reports absent.
func NewEngine(source *Source, enricher Enricher, topN int) *Engine {
	if topN < 1 {
		topN = 10
	}
	return &Engine{source: source, enricher: enricher, topN: topN}
}

// Recommend produces the ordered result list for a query. Defaults are
// applied to unset enum fields first. Never returns an error: every data
// dependency degrades (static catalog, absent enrichment) rather than
// failing the request.
func (e *Engine) Recommend(ctx context.Context, query *models.PreferenceQuery) []models.RecommendationResult {
	start := time.Now()
	defer func() {
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	}()

	query.ApplyDefaults()

	candidates := e.source.Candidates(ctx, query)

	scored := make([]ScoredCandidate, 0, len(candidates))
	for i := range candidates {
		if !Eligible(&candidates[i], query) {
			continue
		}
		scored = append(scored, ScoreCandidate(&candidates[i], query))
	}

	// Stable: ties keep candidate source order, which for vector-sourced
	// pools means ascending distance.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	limit := e.topN
	if query.Limit > 0 {
		limit = query.Limit
	}
	if limit < 1 {
		limit = 1
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	results := make([]models.RecommendationResult, 0, len(scored))
	for i := range scored {
		results = append(results, e.assemble(ctx, &scored[i]))
	}

	logging.Debug().
		Int("candidates", len(candidates)).
		Int("results", len(results)).
		Msg("recommendation pipeline completed")
	return results
}

// assemble merges one finalist with its enrichment lookup. Enrichment runs
// after ranking and never influences score or order; record-level fields
// serve as fallbacks when the provider has nothing.
func (e *Engine) assemble(ctx context.Context, candidate *ScoredCandidate) models.RecommendationResult {
	record := &candidate.Record

	enrichment, status := e.enricher.Lookup(ctx, record.Title, record.TMDBID, yearOf(record.FirstAirDate))
	if status != tmdb.StatusFound {
		enrichment = nil
	}

	result := models.RecommendationResult{
		Title:         record.Title,
		Reason:        candidate.Reason,
		Genres:        record.Genres,
		ContentRating: record.ContentRating,
		EpisodeLength: record.EpisodeLength,
		Seasons:       record.Seasons,
		Language:      record.Language,
		PosterURL:     record.PosterURL,
		TMDBRating:    record.VoteAverage,
		TMDBOverview:  record.Overview,
		FirstAirDate:  isoDate(record.FirstAirDate),
	}
	if result.Genres == nil {
		result.Genres = models.GenreList{}
	}

	if enrichment != nil {
		if enrichment.PosterURL != "" {
			result.PosterURL = enrichment.PosterURL
		}
		if enrichment.Rating > 0 {
			result.TMDBRating = enrichment.Rating
		}
		if enrichment.Overview != "" {
			result.TMDBOverview = enrichment.Overview
		}
		if enrichment.FirstAirDate != "" {
			result.FirstAirDate = isoDate(enrichment.FirstAirDate)
		}
	}

	summary := record.Overview
	if summary == "" {
		summary = result.TMDBOverview
	}
	result.ShortSummary = models.ShortenSummary(summary)

	return result
}

// yearOf extracts the year from a YYYY-MM-DD date string, 0 when absent or
// malformed.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// isoDate normalizes a provider date to ISO 8601 (YYYY-MM-DD). Values that
// do not parse pass through unchanged rather than being dropped.
func isoDate(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02")
}
