// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package recommend

import "github.com/tomtom215/showfinder/internal/models"

// ageAdultThreshold is the requester age below which adult-rated shows are
// excluded regardless of watching context.
const ageAdultThreshold = 16

// seasonBingeThreshold splits "short series" from "binge" shows.
const seasonBingeThreshold = 3

// episodeShortThreshold splits short from long episodes, in minutes.
const episodeShortThreshold = 30

// Eligible is the hard filter: a pure predicate deciding whether a show may
// appear in results for this query. The rules are independent exclusions;
// failing any one removes the show. Unknown attribute values never exclude.
func Eligible(record *models.ShowRecord, query *models.PreferenceQuery) bool {
	if record.ContentRating != "" && models.IsAdultRating(record.ContentRating) {
		if query.WatchingContext == models.ContextFamily || query.Age < ageAdultThreshold {
			return false
		}
	}

	if record.Seasons > 0 {
		if query.BingePreference == models.BingeShortSeries && record.Seasons > seasonBingeThreshold {
			return false
		}
		if query.BingePreference == models.BingeLong && record.Seasons <= seasonBingeThreshold {
			return false
		}
	}

	if record.EpisodeLength > 0 {
		if query.EpisodeLengthPreference == models.EpisodeShort && record.EpisodeLength > episodeShortThreshold {
			return false
		}
		if query.EpisodeLengthPreference == models.EpisodeLong && record.EpisodeLength <= episodeShortThreshold {
			return false
		}
	}

	if query.LanguagePreference != "" && record.Language != "" &&
		record.Language != query.LanguagePreference {
		return false
	}

	return true
}
