// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package api is the HTTP surface of Showfinder: recommendation and search
// endpoints, account and watchlist management, and operational endpoints
// for cache control, health, and metrics.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/showfinder/internal/auth"
	"github.com/tomtom215/showfinder/internal/catalog"
	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/recommend"
	"github.com/tomtom215/showfinder/internal/tmdb"
	"github.com/tomtom215/showfinder/internal/watchlist"
)

// Server wires handlers to their collaborators.
type Server struct {
	engine    *recommend.Engine
	gateway   *tmdb.Gateway
	store     *catalog.Store
	users     *auth.UserStore
	watchlist *watchlist.Store
	issuer    *auth.TokenIssuer
	validate  *validator.Validate
	security  config.SecurityConfig
}

// NewServer creates the API server. issuer may be nil when no JWT secret is
// configured; account and watchlist routes are then not registered.
func NewServer(
	engine *recommend.Engine,
	gateway *tmdb.Gateway,
	store *catalog.Store,
	users *auth.UserStore,
	wl *watchlist.Store,
	issuer *auth.TokenIssuer,
	security config.SecurityConfig,
) *Server {
	return &Server{
		engine:    engine,
		gateway:   gateway,
		store:     store,
		users:     users,
		watchlist: wl,
		issuer:    issuer,
		validate:  validator.New(),
		security:  security,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger)

	origins := s.security.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if s.security.RateLimitReqs > 0 {
		r.Use(httprate.LimitByIP(s.security.RateLimitReqs, s.security.RateLimitWindow))
	}

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommend", s.handleRecommend)
		r.Get("/search/semantic", s.handleSemanticSearch)
		r.Get("/shows/{id}/similar", s.handleSimilar)

		r.Get("/cache/stats", s.handleCacheStats)
		r.Post("/cache/clear", s.handleCacheClear)

		if s.issuer != nil {
			r.Post("/auth/register", s.handleRegister)
			r.Post("/auth/login", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.issuer.RequireAuth)
				r.Get("/watchlist", s.handleWatchlistList)
				r.Post("/watchlist", s.handleWatchlistAdd)
				r.Delete("/watchlist/{showID}", s.handleWatchlistRemove)
			})
		}
	})

	return r
}
