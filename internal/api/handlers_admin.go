// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"net/http"

	"github.com/tomtom215/showfinder/internal/logging"
)

// handleHealth serves GET /healthz. The service is healthy as long as it can
// answer; a down catalog or provider degrades features, not liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":             "ok",
		"enrichment_enabled": s.gateway.Enabled(),
	}

	if s.store != nil {
		count, err := s.store.Count(r.Context())
		if err != nil {
			logging.Warn().Err(err).Msg("catalog count failed during health check")
			health["catalog"] = "degraded"
		} else {
			health["catalog_shows"] = count
		}
	}

	writeJSON(w, http.StatusOK, health)
}

// handleCacheStats serves GET /api/v1/cache/stats.
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gateway.CacheStats())
}

// handleCacheClear serves POST /api/v1/cache/clear.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.gateway.ClearCache()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
