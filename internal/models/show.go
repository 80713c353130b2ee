// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package models defines the core data structures shared across Showfinder:
// show records, preference queries, and recommendation results.
package models

import (
	"time"
)

// ShowRecord is a TV show as stored in the catalog. Zero values mean
// "unknown" for the optional numeric fields: a show with Seasons == 0 has an
// unknown season count, not zero seasons (valid counts start at 1).
type ShowRecord struct {
	// ID is the internal record identifier ("tmdb-<id>" for ingested rows
	// so re-ingesting is idempotent, a slug for the bundled static catalog).
	ID string `json:"id"`

	// TMDBID is the external provider identifier, 0 when unknown.
	TMDBID int64 `json:"tmdb_id,omitempty"`

	Title    string `json:"title"`
	Overview string `json:"overview,omitempty"`

	// Genres is always normalized: lowercase, trimmed, numeric provider
	// codes mapped to names, unknown codes dropped.
	Genres GenreList `json:"genres,omitempty"`

	// ContentRating is the TV rating (TV-14, TV-MA, ...), "" when unknown.
	ContentRating string `json:"content_rating,omitempty"`

	// EpisodeLength is the average episode duration in minutes, 0 when unknown.
	EpisodeLength int `json:"average_episode_length,omitempty"`

	// Seasons is the season count, 0 when unknown.
	Seasons int `json:"number_of_seasons,omitempty"`

	// Language is the original language, "" when unknown.
	Language string `json:"language,omitempty"`

	Popularity  float64 `json:"popularity,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	VoteCount   int     `json:"vote_count,omitempty"`

	// PosterURL and FirstAirDate are provider metadata captured at ingest
	// time. They serve as fallbacks when live enrichment has nothing.
	PosterURL    string `json:"poster_url,omitempty"`
	FirstAirDate string `json:"first_air_date,omitempty"` // YYYY-MM-DD

	// Embedding is the semantic vector for the show's overview text.
	// Nil for rows that have not been embedded.
	Embedding []float32 `json:"embedding,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// HasEmbedding reports whether the record carries an embedding vector.
func (s *ShowRecord) HasEmbedding() bool {
	return len(s.Embedding) > 0
}

// RecommendationResult is one row of the final recommendation response.
// Immutable once constructed; enrichment fields are empty when the provider
// is unconfigured or had no match and the record carries no fallback.
type RecommendationResult struct {
	Title  string `json:"title"`
	Reason string `json:"recommendation_reason,omitempty"`

	Genres       []string `json:"genres"`
	ShortSummary string   `json:"short_summary"`

	ContentRating string `json:"content_rating,omitempty"`
	EpisodeLength int    `json:"average_episode_length,omitempty"`
	Seasons       int    `json:"number_of_seasons,omitempty"`
	Language      string `json:"language,omitempty"`

	PosterURL    string  `json:"poster_url,omitempty"`
	TMDBRating   float64 `json:"tmdb_rating,omitempty"`
	TMDBOverview string  `json:"tmdb_overview,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"` // ISO 8601 date
}

// adultRatings are content ratings excluded for family viewing and under-16s.
var adultRatings = map[string]struct{}{
	"TV-MA": {},
}

// IsAdultRating reports whether a content rating is considered adult.
// Unknown (empty) ratings are not adult; rating checks are skipped entirely
// for records without one.
func IsAdultRating(rating string) bool {
	_, ok := adultRatings[rating]
	return ok
}
