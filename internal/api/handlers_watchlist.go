// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/tomtom215/showfinder/internal/auth"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/watchlist"
)

type watchlistAddRequest struct {
	ShowID string `json:"show_id" validate:"required"`
	Title  string `json:"title"`
}

// handleWatchlistList serves GET /api/v1/watchlist.
func (s *Server) handleWatchlistList(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	entries, err := s.watchlist.List(r.Context(), claims.Subject)
	if err != nil {
		logging.Error().Err(err).Msg("watchlist list failed")
		writeError(w, http.StatusInternalServerError, "could not load watchlist")
		return
	}
	if entries == nil {
		entries = []watchlist.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}

// handleWatchlistAdd serves POST /api/v1/watchlist.
func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req watchlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	entry, err := s.watchlist.Add(r.Context(), claims.Subject, req.ShowID, req.Title)
	if err != nil {
		logging.Error().Err(err).Msg("watchlist add failed")
		writeError(w, http.StatusInternalServerError, "could not update watchlist")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleWatchlistRemove serves DELETE /api/v1/watchlist/{showID}.
func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	showID := chi.URLParam(r, "showID")
	err := s.watchlist.Remove(r.Context(), claims.Subject, showID)
	if err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			writeError(w, http.StatusNotFound, "show not on watchlist")
			return
		}
		logging.Error().Err(err).Msg("watchlist remove failed")
		writeError(w, http.StatusInternalServerError, "could not update watchlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"removed": showID})
}
