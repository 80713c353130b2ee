// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package main is the entry point for the Showfinder server.
//
// Startup order:
//
//  1. Configuration: Koanf v2 layered sources (env > config file > defaults)
//  2. Logging: zerolog global logger
//  3. Catalog: BadgerDB show store (in-memory when no path is configured)
//  4. Enrichment: cached TMDB gateway (disabled without an API key)
//  5. Embedding: OpenAI-compatible encoder (optional)
//  6. HTTP API and background services under a suture supervisor tree
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/tomtom215/showfinder/internal/api"
	"github.com/tomtom215/showfinder/internal/auth"
	"github.com/tomtom215/showfinder/internal/catalog"
	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/embedding"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/recommend"
	"github.com/tomtom215/showfinder/internal/tmdb"
	"github.com/tomtom215/showfinder/internal/watchlist"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("starting showfinder")

	store, err := catalog.Open(cfg.Catalog.Path, cfg.Embedding.Dim)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	gateway := tmdb.NewGateway(cfg.TMDB)

	var encoder recommend.Encoder
	if cfg.Embedding.Enabled {
		encoder = embedding.NewOpenAIEncoder(cfg.Embedding)
		logging.Info().
			Str("model", cfg.Embedding.Model).
			Int("dim", cfg.Embedding.Dim).
			Msg("embedding encoder enabled")
	}

	source := recommend.NewSource(store, encoder, cfg.Recommend.CandidateK)
	engine := recommend.NewEngine(source, gateway, cfg.Recommend.TopN)

	var (
		users  *auth.UserStore
		wl     *watchlist.Store
		issuer *auth.TokenIssuer
	)
	if cfg.Security.JWTSecret != "" {
		users = auth.NewUserStore(store.DB())
		wl = watchlist.NewStore(store.DB())
		issuer = auth.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	} else {
		logging.Warn().Msg("no JWT secret configured, account and watchlist endpoints disabled")
	}

	server := api.NewServer(engine, gateway, store, users, wl, issuer, cfg.Security)

	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
	supervisor := suture.New("showfinder", suture.Spec{
		EventHook: handler.MustHook(),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	supervisor.Add(api.NewService(addr, server.Router(), cfg.Server.Timeout))
	supervisor.Add(catalog.NewGCService(store, cfg.Catalog.GCInterval))
	supervisor.Add(tmdb.NewJanitor(gateway, cfg.TMDB.NegativeCacheTTL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = supervisor.Serve(ctx)
	if err != nil && err != context.Canceled {
		return err
	}
	logging.Info().Msg("showfinder stopped")
	return nil
}
