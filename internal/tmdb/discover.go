// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
)

// TVListing is one row of a popular-TV discovery page, used by the ingest
// job to populate the catalog. Genre ids are raw provider codes; the caller
// maps them through the fixed code table.
type TVListing struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	GenreIDs         []int64 `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	FirstAirDate     string  `json:"first_air_date"`
}

// PosterURL composes the full poster URL for a listing, "" when the listing
// has no poster.
func (c *Client) PosterURL(l TVListing) string {
	if l.PosterPath == "" {
		return ""
	}
	return c.imageBaseURL + l.PosterPath
}

// PopularTV fetches one page of popular TV shows. Unlike the lookup path
// this is an offline batch call: it skips the circuit breaker and surfaces
// errors directly, but still honors the outbound rate limiter.
func (c *Client) PopularTV(ctx context.Context, page int) ([]TVListing, error) {
	if page < 1 {
		page = 1
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("page", strconv.Itoa(page))
	reqURL := c.baseURL + "/tv/popular?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch popular tv page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch popular tv page %d: status %d", page, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read popular tv page %d: %w", page, err)
	}

	var decoded struct {
		Results []TVListing `json:"results"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode popular tv page %d: %w", page, err)
	}
	return decoded.Results, nil
}
