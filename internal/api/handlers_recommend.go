// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/tomtom215/showfinder/internal/catalog"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/recommend"
)

// handleRecommend serves POST /api/v1/recommend.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var query models.PreferenceQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	results := s.engine.Recommend(r.Context(), &query)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

// handleSemanticSearch serves GET /api/v1/search/semantic?q=...&limit=N.
func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	shows, err := s.engine.SemanticSearch(r.Context(), q, queryLimit(r))
	if err != nil {
		if errors.Is(err, recommend.ErrSimilarityUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "semantic search is not available")
			return
		}
		logging.Error().Err(err).Msg("semantic search failed")
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(shows),
		"results": shows,
	})
}

// handleSimilar serves GET /api/v1/shows/{id}/similar?limit=N.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	shows, err := s.engine.MoreLikeThis(r.Context(), id, queryLimit(r))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, "show not found")
		case errors.Is(err, recommend.ErrSimilarityUnavailable):
			writeError(w, http.StatusServiceUnavailable, "similarity search is not available")
		default:
			logging.Error().Err(err).Str("show_id", id).Msg("similarity lookup failed")
			writeError(w, http.StatusInternalServerError, "similarity lookup failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(shows),
		"results": shows,
	})
}

// queryLimit parses an optional positive limit parameter, 0 when absent.
func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0
	}
	if limit > 50 {
		limit = 50
	}
	return limit
}
