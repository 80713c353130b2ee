// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/showfinder/internal/models"
)

// moodGenres is the fixed soft mapping from mood to the genre set that
// signals a fit. Intersecting any of these adds one point to the score.
var moodGenres = map[models.Mood]map[string]struct{}{
	models.MoodChill:      genreSet("comedy", "slice of life", "lifestyle", "animation", "documentary", "design"),
	models.MoodHappy:      genreSet("comedy", "romance", "family", "musical", "talent", "cooking"),
	models.MoodFamiliar:   genreSet("sitcom", "procedural", "family", "animation", "reality"),
	models.MoodFocused:    genreSet("drama", "mystery", "historical", "legal", "medical", "competition"),
	models.MoodAdrenaline: genreSet("action", "adventure", "sci-fi", "fantasy", "survival", "competition"),
	models.MoodDark:       genreSet("thriller", "crime", "horror", "psychological", "true crime"),
	models.MoodCurious:    genreSet("documentary", "travel", "culture", "anthology", "celebrity", "reality"),
}

// moodPhrases is the fixed reason clause per mood, emitted only when the
// show's genres intersect that mood's genre set.
var moodPhrases = map[models.Mood]string{
	models.MoodChill:      "Relaxed and easy to watch",
	models.MoodHappy:      "Feel-good and uplifting",
	models.MoodFamiliar:   "Comforting and familiar vibe",
	models.MoodFocused:    "Engaging and easy to focus on",
	models.MoodAdrenaline: "High-energy and exciting",
	models.MoodDark:       "Darker, more intense tone",
	models.MoodCurious:    "Great for curiosity and discovery",
}

// lengthUnavailableNote is the one clause allowed past the two-clause cap.
const lengthUnavailableNote = "Episode length info is unavailable"

func genreSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// ScoreCandidate computes the soft score and reason for one surviving
// candidate. Score = |user genres ∩ show genres| plus one when the show's
// genres intersect the requested mood's genre set.
func ScoreCandidate(record *models.ShowRecord, query *models.PreferenceQuery) ScoredCandidate {
	showGenres := record.Genres.GenreSet()

	userGenres := models.NormalizeGenres(query.PreferredGenres).GenreSet()
	var common []string
	for g := range userGenres {
		if _, ok := showGenres[g]; ok {
			common = append(common, g)
		}
	}
	sort.Strings(common)

	moodMatched := false
	for g := range showGenres {
		if _, ok := moodGenres[query.Mood][g]; ok {
			moodMatched = true
			break
		}
	}

	score := len(common)
	if moodMatched {
		score++
	}

	return ScoredCandidate{
		Record: *record,
		Score:  score,
		Reason: buildReason(common, record, query, moodMatched),
	}
}

// buildReason assembles the explanation string. Clauses are generated in
// priority order (genre overlap, binge fit, episode length, mood), joined by
// ". ", capped at two, except that the episode-length-unavailable note is
// always kept even as a third clause.
func buildReason(commonGenres []string, record *models.ShowRecord, query *models.PreferenceQuery, moodMatched bool) string {
	var clauses []string

	if len(commonGenres) > 0 {
		clauses = append(clauses, "Matches your interest in "+strings.Join(commonGenres, ", "))
	}

	if record.Seasons > 0 {
		switch {
		case query.BingePreference == models.BingeShortSeries && record.Seasons <= seasonBingeThreshold:
			clauses = append(clauses, "Easy to finish in one season")
		case query.BingePreference == models.BingeLong && record.Seasons > seasonBingeThreshold:
			clauses = append(clauses, "Great for binge watching")
		}
	}

	lengthWanted := query.EpisodeLengthPreference == models.EpisodeShort ||
		query.EpisodeLengthPreference == models.EpisodeLong
	if record.EpisodeLength > 0 {
		switch {
		case query.EpisodeLengthPreference == models.EpisodeShort && record.EpisodeLength <= episodeShortThreshold:
			clauses = append(clauses, "Short, easy-to-watch episodes")
		case query.EpisodeLengthPreference == models.EpisodeLong && record.EpisodeLength > episodeShortThreshold:
			clauses = append(clauses, "Long, immersive episodes")
		}
	} else if lengthWanted {
		clauses = append(clauses, lengthUnavailableNote)
	}

	if moodMatched {
		if phrase, ok := moodPhrases[query.Mood]; ok {
			clauses = append(clauses, phrase)
		}
	}

	if len(clauses) == 0 {
		return ""
	}

	top := clauses
	if len(top) > 2 {
		top = append([]string(nil), clauses[:2]...)
		for _, c := range clauses[2:] {
			if c == lengthUnavailableNote {
				top = append(top, lengthUnavailableNote)
				break
			}
		}
	}
	return strings.Join(top, ". ")
}
