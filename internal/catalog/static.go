// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package catalog

import "github.com/tomtom215/showfinder/internal/models"

// StaticCatalog returns the bundled fallback dataset. It keeps the
// recommendation endpoint functional with an empty or unreachable store.
// Callers receive a fresh slice; the records themselves are never mutated
// by the pipeline.
func StaticCatalog() []models.ShowRecord {
	return []models.ShowRecord{
		{
			ID:            "stranger-things",
			Title:         "Stranger Things",
			Overview:      "A group of kids uncover supernatural mysteries in their small town during the 1980s.",
			Genres:        models.GenreList{"sci-fi", "drama", "mystery"},
			ContentRating: "TV-14",
			EpisodeLength: 55,
			Seasons:       4,
			Language:      "English",
		},
		{
			ID:            "brooklyn-nine-nine",
			Title:         "Brooklyn Nine-Nine",
			Overview:      "A lighthearted comedy following detectives in a New York City police precinct.",
			Genres:        models.GenreList{"comedy", "crime"},
			ContentRating: "TV-14",
			EpisodeLength: 22,
			Seasons:       8,
			Language:      "English",
		},
		{
			ID:            "planet-earth",
			Title:         "Planet Earth",
			Overview:      "A visually stunning documentary series exploring Earth's natural wonders.",
			Genres:        models.GenreList{"documentary", "nature"},
			ContentRating: "TV-G",
			EpisodeLength: 50,
			Seasons:       1,
			Language:      "English",
		},
		{
			ID:            "dark",
			Title:         "Dark",
			Overview:      "A complex time-travel mystery connecting families across generations in a German town.",
			Genres:        models.GenreList{"sci-fi", "thriller", "drama"},
			ContentRating: "TV-MA",
			EpisodeLength: 60,
			Seasons:       3,
			Language:      "German",
		},
		{
			ID:            "the-office",
			Title:         "The Office",
			Overview:      "A mockumentary-style comedy about everyday office life and awkward coworkers.",
			Genres:        models.GenreList{"comedy"},
			ContentRating: "TV-14",
			EpisodeLength: 22,
			Seasons:       9,
			Language:      "English",
		},
		{
			ID:            "avatar-the-last-airbender",
			Title:         "Avatar: The Last Airbender",
			Overview:      "A young hero must master the elements to restore balance to a war-torn world.",
			Genres:        models.GenreList{"animation", "adventure", "fantasy"},
			ContentRating: "TV-Y7",
			EpisodeLength: 23,
			Seasons:       3,
			Language:      "English",
		},
	}
}
