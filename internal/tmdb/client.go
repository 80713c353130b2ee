// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/metrics"
)

// Enrichment is the provider metadata merged into a recommendation result.
// Zero values mean the provider did not supply the field.
type Enrichment struct {
	TMDBID       int64   `json:"tmdb_id,omitempty"`
	PosterURL    string  `json:"poster_url,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
}

// errTransient marks provider failures that say nothing about whether the
// show exists: timeouts, connection errors, 5xx responses, an open breaker.
// These must not be negative-cached.
var errTransient = errors.New("provider temporarily unavailable")

// Client talks to the TMDB HTTP API. All calls go through a circuit breaker
// and an outbound rate limiter. Timeouts are deliberately short; enrichment
// is best-effort and a slow provider must not stall recommendations.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker[*Enrichment]
	limiter      *rate.Limiter
}

// NewClient creates a provider client from configuration.
func NewClient(cfg config.TMDBConfig) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	}

	settings := gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), int(cfg.RatePerSecond)+1)
	}

	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		breaker: gobreaker.NewCircuitBreaker[*Enrichment](settings),
		limiter: limiter,
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// SearchTV finds the best match for a title, optionally constrained by first
// air year. Returns (nil, nil) when the provider has no match; a non-nil
// error always wraps errTransient.
func (c *Client) SearchTV(ctx context.Context, title string, year int) (*Enrichment, error) {
	params := url.Values{}
	params.Set("query", title)
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	return c.execute(ctx, "/search/tv", params, func(body []byte) (*Enrichment, error) {
		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			// Malformed payloads are treated like an empty result set.
			logging.Debug().Err(err).Str("title", title).Msg("tmdb search response not decodable")
			return nil, nil
		}
		if len(resp.Results) == 0 {
			return nil, nil
		}
		return c.toEnrichment(resp.Results[0]), nil
	})
}

// GetByID fetches details for a known TMDB series id. Returns (nil, nil)
// when the id does not exist.
func (c *Client) GetByID(ctx context.Context, id int64) (*Enrichment, error) {
	return c.execute(ctx, "/tv/"+strconv.FormatInt(id, 10), url.Values{}, func(body []byte) (*Enrichment, error) {
		var result tvResult
		if err := json.Unmarshal(body, &result); err != nil {
			logging.Debug().Err(err).Int64("tmdb_id", id).Msg("tmdb details response not decodable")
			return nil, nil
		}
		if result.ID == 0 {
			return nil, nil
		}
		return c.toEnrichment(result), nil
	})
}

// execute runs one provider call through the rate limiter and breaker.
func (c *Client) execute(ctx context.Context, path string, params url.Values, parse func([]byte) (*Enrichment, error)) (*Enrichment, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", errTransient, err)
		}
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (*Enrichment, error) {
		return c.doRequest(ctx, path, params, parse)
	})
	metrics.ProviderRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open", errTransient)
		}
		metrics.ProviderRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if result == nil {
		metrics.ProviderRequestsTotal.WithLabelValues("absent").Inc()
	} else {
		metrics.ProviderRequestsTotal.WithLabelValues("found").Inc()
	}
	return result, nil
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values, parse func([]byte) (*Enrichment, error)) (*Enrichment, error) {
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", errTransient, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		// Provider rate limiting looks like a miss to callers. The hit to
		// the metric keeps the condition visible.
		metrics.ProviderRequestsTotal.WithLabelValues("rate_limited").Inc()
		return nil, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: provider returned %d", errTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		// 4xx other than the above means the request itself is bad. Treat
		// as no match so it is not retried every call.
		logging.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("tmdb rejected request")
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", errTransient, err)
	}
	return parse(body)
}

func (c *Client) toEnrichment(r tvResult) *Enrichment {
	e := &Enrichment{
		TMDBID:       r.ID,
		Overview:     r.Overview,
		Rating:       r.VoteAverage,
		FirstAirDate: r.FirstAirDate,
	}
	if r.PosterPath != "" {
		e.PosterURL = c.imageBaseURL + r.PosterPath
	}
	return e
}

type searchResponse struct {
	Results []tvResult `json:"results"`
}

type tvResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	FirstAirDate string  `json:"first_air_date"`
}
