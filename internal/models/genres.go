// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

import (
	"strings"

	"github.com/goccy/go-json"
)

// tmdbTVGenreNames maps provider TV genre codes to normalized lowercase
// genre names. Codes missing from this table are dropped silently.
var tmdbTVGenreNames = map[int64]string{
	10759: "action",
	16:    "animation",
	35:    "comedy",
	80:    "crime",
	99:    "documentary",
	18:    "drama",
	10751: "family",
	10762: "kids",
	9648:  "mystery",
	10763: "news",
	10764: "reality",
	10765: "sci-fi",
	10766: "soap",
	10767: "talk",
	10768: "war",
	37:    "western",
}

// GenreNameForCode returns the normalized genre name for a provider code.
func GenreNameForCode(code int64) (string, bool) {
	name, ok := tmdbTVGenreNames[code]
	return name, ok
}

// GenreList is a normalized genre name list. Catalog rows may have been
// written with provider genre codes instead of names, so JSON decoding
// accepts a mixed array of strings and numbers and normalizes both forms.
type GenreList []string

// UnmarshalJSON decodes either genre names or numeric provider codes.
// Names are lowercased and trimmed; codes are mapped through the fixed
// code table and unknown codes are dropped.
func (g *GenreList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			if cleaned := NormalizeGenre(name); cleaned != "" {
				out = append(out, cleaned)
			}
			continue
		}

		var code int64
		if err := json.Unmarshal(item, &code); err == nil {
			if mapped, ok := tmdbTVGenreNames[code]; ok {
				out = append(out, mapped)
			}
			continue
		}
		// Anything else (objects, booleans) is dropped.
	}

	*g = out
	return nil
}

// NormalizeGenre lowercases and trims a single genre name. Idempotent.
func NormalizeGenre(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeGenres normalizes a genre name list, dropping blanks. Idempotent:
// normalizing an already-normalized list yields an identical list.
func NormalizeGenres(names []string) GenreList {
	out := make(GenreList, 0, len(names))
	for _, n := range names {
		if cleaned := NormalizeGenre(n); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// GenreSet returns the genres as a membership set.
func (g GenreList) GenreSet() map[string]struct{} {
	set := make(map[string]struct{}, len(g))
	for _, name := range g {
		set[name] = struct{}{}
	}
	return set
}

// summaryMaxLength bounds the short summary on result rows.
const summaryMaxLength = 220

// SummaryFallback is emitted when a show has no overview at all.
const SummaryFallback = "No summary available."

// ShortenSummary trims and length-limits overview text. Text at or under the
// limit is kept as-is; longer text is cut and ellipsis-terminated. Blank
// input returns the fallback sentence.
func ShortenSummary(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return SummaryFallback
	}

	runes := []rune(cleaned)
	if len(runes) <= summaryMaxLength {
		return cleaned
	}
	cut := strings.TrimRight(string(runes[:summaryMaxLength-3]), " ")
	return cut + "..."
}
