package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Ensure OpenAIEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*OpenAIEmbedding)(nil)

// OpenAIEmbedding implements EmbeddingService using OpenAI's embedding API.
// The text-embedding-3 models accept a requested dimension count, so the
// output is shortened server-side to match the index.
type OpenAIEmbedding struct {
	client     *openai.Client
	model      string
	dimensions int
}

// NewOpenAIEmbedding creates a new OpenAI embedding service. dimensions <= 0
// selects the index default of 384.
func NewOpenAIEmbedding(apiKey, model, baseURL string, dimensions int) (driven.EmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	if dimensions <= 0 {
		dimensions = 384
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIEmbedding{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		dimensions: dimensions,
	}, nil
}

// Embed generates embeddings for document texts
func (e *OpenAIEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	truncated := make([]string, len(texts))
	for i, text := range texts {
		truncated[i] = truncateText(text, cohereMaxChars)
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      truncated,
		Model:      openai.EmbeddingModel(e.model),
		Dimensions: e.dimensions,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", domain.ErrEmbeddingMalformed, len(resp.Data), len(texts))
	}

	// Sort by index to ensure order matches input
	embeddings := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(embeddings) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", domain.ErrEmbeddingMalformed, d.Index)
		}
		embeddings[d.Index] = d.Embedding
	}
	for i, vec := range embeddings {
		if len(vec) != e.dimensions {
			return nil, fmt.Errorf("embedding %d: %w", i, &domain.DimensionError{Want: e.dimensions, Got: len(vec)})
		}
	}

	return embeddings, nil
}

// EmbedQuery generates an embedding for a search query
func (e *OpenAIEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embeddings, err := e.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", domain.ErrEmbeddingMalformed)
	}
	return embeddings[0], nil
}

// Dimensions returns the embedding dimension size
func (e *OpenAIEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used
func (e *OpenAIEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the embedding service is available
func (e *OpenAIEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.EmbedQuery(ctx, "health check")
	return err
}

// Close releases resources held by the embedding service
func (e *OpenAIEmbedding) Close() error {
	return nil
}

// mapOpenAIError translates API errors into the shared embedding error
// taxonomy so callers handle both providers the same way.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnauthorized, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", domain.ErrEmbeddingRateLimited, err)
		}
	}
	return fmt.Errorf("embedding request failed: %w", err)
}
