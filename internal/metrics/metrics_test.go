// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestEnrichmentCacheCounters(t *testing.T) {
	before := &dto.Metric{}
	if err := EnrichmentCacheHits.Write(before); err != nil {
		t.Fatalf("read counter: %v", err)
	}

	EnrichmentCacheHits.Inc()
	EnrichmentCacheHits.Inc()

	after := &dto.Metric{}
	if err := EnrichmentCacheHits.Write(after); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if got := after.GetCounter().GetValue() - before.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected counter delta 2, got %v", got)
	}
}

func TestObserveAPIRequest(t *testing.T) {
	ObserveAPIRequest("/api/v1/recommend", "POST", 200, 42*time.Millisecond)

	counter, err := APIRequestsTotal.GetMetricWithLabelValues("/api/v1/recommend", "POST", "200")
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}
	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if m.GetCounter().GetValue() < 1 {
		t.Error("expected at least one observation")
	}
}

func TestProviderOutcomeLabels(t *testing.T) {
	for _, outcome := range []string{"found", "absent", "rate_limited", "error"} {
		ProviderRequestsTotal.WithLabelValues(outcome).Inc()
	}

	m := &dto.Metric{}
	counter, err := ProviderRequestsTotal.GetMetricWithLabelValues("found")
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}
	if err := counter.Write(m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if m.GetCounter().GetValue() < 1 {
		t.Error("expected found outcome recorded")
	}
}
