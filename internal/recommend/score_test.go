// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package recommend

import (
	"strings"
	"testing"

	"github.com/tomtom215/showfinder/internal/models"
)

func TestScoreGenreOverlapAndMood(t *testing.T) {
	record := models.ShowRecord{
		Genres:  models.GenreList{"comedy", "drama", "crime"},
		Seasons: 2,
	}
	query := models.PreferenceQuery{
		PreferredGenres: []string{"Comedy", "DRAMA", "romance"},
		Mood:            models.MoodChill, // comedy matches chill
	}

	sc := ScoreCandidate(&record, &query)
	if sc.Score != 3 {
		t.Fatalf("expected score 3 (2 overlap + 1 mood), got %d", sc.Score)
	}
	if !strings.HasPrefix(sc.Reason, "Matches your interest in comedy, drama") {
		t.Errorf("genre clause should lead with sorted overlap, got %q", sc.Reason)
	}
}

func TestScoreNoSignals(t *testing.T) {
	record := models.ShowRecord{Genres: models.GenreList{"western"}}
	query := models.PreferenceQuery{Mood: models.MoodChill}

	sc := ScoreCandidate(&record, &query)
	if sc.Score != 0 {
		t.Errorf("expected score 0, got %d", sc.Score)
	}
	if sc.Reason != "" {
		t.Errorf("expected no reason, got %q", sc.Reason)
	}
}

func TestScoreDuplicateUserGenresCountOnce(t *testing.T) {
	record := models.ShowRecord{Genres: models.GenreList{"comedy"}}
	query := models.PreferenceQuery{
		PreferredGenres: []string{"comedy", "Comedy", " COMEDY "},
		Mood:            models.MoodDark,
	}

	sc := ScoreCandidate(&record, &query)
	if sc.Score != 1 {
		t.Errorf("duplicate user genres must count once, got score %d", sc.Score)
	}
}

func TestReasonCappedAtTwoClauses(t *testing.T) {
	record := models.ShowRecord{
		Genres:        models.GenreList{"comedy"},
		Seasons:       8,
		EpisodeLength: 22,
	}
	query := models.PreferenceQuery{
		PreferredGenres:         []string{"comedy"},
		BingePreference:         models.BingeLong,
		EpisodeLengthPreference: models.EpisodeShort,
		Mood:                    models.MoodChill,
	}

	sc := ScoreCandidate(&record, &query)
	if got := strings.Count(sc.Reason, ". ") + 1; got != 2 {
		t.Errorf("expected 2 clauses, got %d in %q", got, sc.Reason)
	}
	if sc.Reason != "Matches your interest in comedy. Great for binge watching" {
		t.Errorf("unexpected reason %q", sc.Reason)
	}
}

func TestReasonUnavailableNoteAllowedAsThirdClause(t *testing.T) {
	record := models.ShowRecord{
		Genres:  models.GenreList{"comedy"},
		Seasons: 8,
		// EpisodeLength unknown.
	}
	query := models.PreferenceQuery{
		PreferredGenres:         []string{"comedy"},
		BingePreference:         models.BingeLong,
		EpisodeLengthPreference: models.EpisodeShort,
		Mood:                    models.MoodDark,
	}

	sc := ScoreCandidate(&record, &query)
	want := "Matches your interest in comedy. Great for binge watching. Episode length info is unavailable"
	if sc.Reason != want {
		t.Errorf("got %q, want %q", sc.Reason, want)
	}
}

func TestReasonMoodPhraseWhenMatched(t *testing.T) {
	record := models.ShowRecord{Genres: models.GenreList{"thriller"}}
	query := models.PreferenceQuery{Mood: models.MoodDark}

	sc := ScoreCandidate(&record, &query)
	if sc.Reason != "Darker, more intense tone" {
		t.Errorf("expected dark mood phrase, got %q", sc.Reason)
	}
	if sc.Score != 1 {
		t.Errorf("mood match should contribute one point, got %d", sc.Score)
	}
}

func TestReasonBingeClauseMatchesIntent(t *testing.T) {
	record := models.ShowRecord{Seasons: 2}
	query := models.PreferenceQuery{
		BingePreference: models.BingeShortSeries,
		Mood:            models.MoodDark,
	}

	sc := ScoreCandidate(&record, &query)
	if sc.Reason != "Easy to finish in one season" {
		t.Errorf("expected short-series clause, got %q", sc.Reason)
	}
}
