// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/showfinder/internal/models"
)

// ErrSimilarityUnavailable is returned when similarity operations cannot run:
// no catalog store, no encoder, or a seed show without an embedding.
var ErrSimilarityUnavailable = errors.New("similarity search unavailable")

// MoreLikeThis returns shows nearest to an existing catalog show by embedding
// distance. The seed show itself is excluded from the results. Returns
// catalog.ErrNotFound (wrapped by the store) for an unknown id and
// ErrSimilarityUnavailable when the seed has no embedding.
func (e *Engine) MoreLikeThis(ctx context.Context, showID string, limit int) ([]models.ShowRecord, error) {
	if e.source.store == nil {
		return nil, ErrSimilarityUnavailable
	}
	if limit < 1 {
		limit = e.topN
	}

	seed, err := e.source.store.Get(ctx, showID)
	if err != nil {
		return nil, err
	}
	if !seed.HasEmbedding() {
		return nil, ErrSimilarityUnavailable
	}

	// Fetch one extra row since the seed is its own nearest neighbor.
	rows, err := e.source.store.NearestByVector(ctx, seed.Embedding, limit+1)
	if err != nil {
		return nil, err
	}

	out := make([]models.ShowRecord, 0, limit)
	for _, row := range rows {
		if row.ID == seed.ID {
			continue
		}
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// SemanticSearch returns catalog shows nearest to a free-text query by
// embedding distance. Unlike Recommend, no filtering or scoring is applied.
func (e *Engine) SemanticSearch(ctx context.Context, text string, limit int) ([]models.ShowRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" || e.source.store == nil || e.source.encoder == nil {
		return nil, ErrSimilarityUnavailable
	}
	if limit < 1 {
		limit = e.topN
	}

	vec, err := e.source.encoder.Encode(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) != e.source.store.Dim() {
		return nil, ErrSimilarityUnavailable
	}
	return e.source.store.NearestByVector(ctx, vec, limit)
}
