// Showfinder - TV Show Recommendation and Discovery Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package embedding adapts an external embedding inference service to a
// small Encoder interface. The service is a black box: text in, fixed-length
// vector out. Inference itself (model loading, batching on the server side)
// is not this package's concern.
package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/metrics"
)

// Encoder turns text into a fixed-length vector. Implementations must be
// deterministic for identical input within a process.
type Encoder interface {
	// Encode returns the embedding vector for the text.
	Encode(ctx context.Context, text string) ([]float32, error)

	// Dim returns the vector dimension the encoder is expected to produce.
	Dim() int
}

// OpenAIEncoder calls any OpenAI-compatible embeddings endpoint. With
// BaseURL pointed at a local server this covers self-hosted MiniLM
// deployments, which is how the 384-dim production setup runs.
type OpenAIEncoder struct {
	client *openai.Client
	model  string
	dim    int
}

// NewOpenAIEncoder builds an encoder from configuration.
func NewOpenAIEncoder(cfg config.EmbeddingConfig) *OpenAIEncoder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIEncoder{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		dim:    cfg.Dim,
	}
}

// Encode returns the embedding vector for the text.
func (e *OpenAIEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create embedding: empty response")
	}

	vec := resp.Data[0].Embedding
	if len(vec) != e.dim {
		metrics.EmbeddingRequestsTotal.WithLabelValues("dim_mismatch").Inc()
	} else {
		metrics.EmbeddingRequestsTotal.WithLabelValues("ok").Inc()
	}
	return vec, nil
}

// EncodeBatch embeds several texts in one request. Used by the ingest job,
// never by the request path.
func (e *OpenAIEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create embeddings batch: %w", err)
	}
	if len(resp.Data) != len(texts) {
		metrics.EmbeddingRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create embeddings batch: expected %d vectors, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	metrics.EmbeddingRequestsTotal.WithLabelValues("ok").Inc()
	return vectors, nil
}

// Dim returns the configured vector dimension.
func (e *OpenAIEncoder) Dim() int {
	return e.dim
}
