// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

// BingePreference expresses whether the user wants a short series or a
// long-running one. The threshold is 3 seasons.
type BingePreference string

const (
	// BingeLong prefers shows with more than 3 seasons.
	BingeLong BingePreference = "binge"
	// BingeShortSeries prefers shows with at most 3 seasons.
	BingeShortSeries BingePreference = "short_series"
)

// Mood is the emotional intention for the viewing session.
type Mood string

const (
	MoodChill      Mood = "chill"
	MoodHappy      Mood = "happy"
	MoodFamiliar   Mood = "familiar"
	MoodFocused    Mood = "focused"
	MoodAdrenaline Mood = "adrenaline"
	MoodDark       Mood = "dark"
	MoodCurious    Mood = "curious"
)

// EpisodeLengthPreference selects episode duration. The threshold is 30
// minutes: "short" means <= 30, "long" means > 30.
type EpisodeLengthPreference string

const (
	EpisodeShort EpisodeLengthPreference = "short"
	EpisodeLong  EpisodeLengthPreference = "long"
	EpisodeAny   EpisodeLengthPreference = "any"
)

// WatchingContext is who the user is watching with.
type WatchingContext string

const (
	ContextAlone   WatchingContext = "alone"
	ContextPartner WatchingContext = "partner"
	ContextFamily  WatchingContext = "family"
)

// PreferenceQuery is a fully-specified recommendation request. Every enum
// field has a default so a query is always complete after ApplyDefaults.
type PreferenceQuery struct {
	// Age is used for content suitability (under-16 excludes adult ratings).
	Age int `json:"age" validate:"gte=0"`

	BingePreference BingePreference `json:"binge_preference,omitempty" validate:"omitempty,oneof=binge short_series"`

	// PreferredGenres are matched case-insensitively against show genres.
	PreferredGenres []string `json:"preferred_genres,omitempty"`

	Mood Mood `json:"mood,omitempty" validate:"omitempty,oneof=chill happy familiar focused adrenaline dark curious"`

	// LanguagePreference filters by exact original language when the show's
	// language is known. Empty means no filter.
	LanguagePreference string `json:"language_preference,omitempty"`

	EpisodeLengthPreference EpisodeLengthPreference `json:"episode_length_preference,omitempty" validate:"omitempty,oneof=short long any"`

	WatchingContext WatchingContext `json:"watching_context,omitempty" validate:"omitempty,oneof=alone partner family"`

	// Query is an optional free-text semantic query. When set and the
	// catalog has embedded rows, candidates come from vector search.
	Query string `json:"query,omitempty"`

	// Limit overrides the configured top-N when positive.
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=50"`
}

// ApplyDefaults fills unset enum fields with their defaults.
func (q *PreferenceQuery) ApplyDefaults() {
	if q.BingePreference == "" {
		q.BingePreference = BingeLong
	}
	if q.Mood == "" {
		q.Mood = MoodChill
	}
	if q.EpisodeLengthPreference == "" {
		q.EpisodeLengthPreference = EpisodeAny
	}
	if q.WatchingContext == "" {
		q.WatchingContext = ContextAlone
	}
}
