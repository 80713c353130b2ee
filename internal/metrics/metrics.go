// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package metrics provides Prometheus instrumentation for Showfinder:
// API latency and throughput, enrichment cache efficiency, provider call
// outcomes, and candidate sourcing decisions.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showfinder_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// Recommendation pipeline metrics
	CandidateSourceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_candidate_source_total",
			Help: "Candidate sourcing strategy selected per request",
		},
		[]string{"source"}, // "vector", "scan", "static"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showfinder_recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Enrichment cache metrics
	EnrichmentCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showfinder_enrichment_cache_hits_total",
			Help: "Total number of enrichment cache hits (positive or negative)",
		},
	)

	EnrichmentCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showfinder_enrichment_cache_misses_total",
			Help: "Total number of enrichment cache misses",
		},
	)

	EnrichmentCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showfinder_enrichment_cache_evictions_total",
			Help: "Total number of entries evicted from the positive enrichment cache",
		},
	)

	// External metadata provider metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_provider_requests_total",
			Help: "Outbound metadata provider requests by outcome",
		},
		[]string{"outcome"}, // "found", "absent", "rate_limited", "error"
	)

	ProviderRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showfinder_provider_request_duration_seconds",
			Help:    "Duration of metadata provider requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	// Circuit breaker state: 0 = closed, 1 = half-open, 2 = open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "showfinder_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Embedding encoder metrics
	EmbeddingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_embedding_requests_total",
			Help: "Embedding encoder requests by outcome",
		},
		[]string{"outcome"}, // "ok", "error", "dim_mismatch"
	)
)

// ObserveAPIRequest records a completed API request.
func ObserveAPIRequest(endpoint, method string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}
