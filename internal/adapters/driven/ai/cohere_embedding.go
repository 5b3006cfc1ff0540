package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Ensure CohereEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*CohereEmbedding)(nil)

const (
	// cohereAPIVersion is sent with every request; the response shape of
	// /v1/embed depends on it.
	cohereAPIVersion = "2022-12-06"

	// cohereMaxChars is the per-text character cap. Longer texts are
	// truncated with a trailing marker before they are sent.
	cohereMaxChars = 2000

	// cohereBatchSize is the number of texts sent per API call.
	cohereBatchSize = 10

	// cohereBatchDelay is the default pause between consecutive batch
	// calls, keeping large ingestions under the trial-key rate limit.
	cohereBatchDelay = 2 * time.Second
)

// Model dimensions for Cohere embedding models
var cohereModelDimensions = map[string]int{
	"embed-english-light-v2.0": 1024,
	"embed-english-light-v3.0": 384,
	"embed-english-v3.0":       1024,
	"embed-multilingual-v3.0":  1024,
}

// CohereEmbedding implements EmbeddingService using Cohere's embed API.
// Document batches are processed sequentially with a fixed delay between
// calls; a failure in any batch aborts the whole operation.
type CohereEmbedding struct {
	apiKey     string
	model      string
	baseURL    string
	dimensions int
	batchDelay time.Duration
	client     *http.Client
}

// NewCohereEmbedding creates a new Cohere embedding service
func NewCohereEmbedding(apiKey, model, baseURL string) (driven.EmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Cohere API key is required")
	}

	if model == "" {
		model = "embed-english-light-v3.0"
	}

	if baseURL == "" {
		baseURL = "https://api.cohere.ai/v1"
	}

	dimensions, ok := cohereModelDimensions[model]
	if !ok {
		// Default to 384 for unknown models
		dimensions = 384
	}

	return &CohereEmbedding{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		dimensions: dimensions,
		batchDelay: cohereBatchDelay,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// SetBatchDelay overrides the pause between batch calls. Zero disables it.
func (e *CohereEmbedding) SetBatchDelay(d time.Duration) {
	e.batchDelay = d
}

// cohereRequest is the request body for the Cohere embed API
type cohereRequest struct {
	Texts     []string `json:"texts"`
	Model     string   `json:"model"`
	InputType string   `json:"input_type"`
}

// cohereResponse is the response from the Cohere embed API
type cohereResponse struct {
	ID         string      `json:"id"`
	Embeddings [][]float32 `json:"embeddings"`
	Message    string      `json:"message,omitempty"`
}

// Embed generates embeddings for document texts. Input order is preserved
// across batches.
func (e *CohereEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += cohereBatchSize {
		if start > 0 && e.batchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.batchDelay):
			}
		}

		end := start + cohereBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := make([]string, 0, end-start)
		for _, text := range texts[start:end] {
			batch = append(batch, truncateText(text, cohereMaxChars))
		}

		vectors, err := e.doRequest(ctx, batch, "search_document")
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", start/cohereBatchSize+1, err)
		}
		embeddings = append(embeddings, vectors...)
	}

	return embeddings, nil
}

// EmbedQuery generates an embedding for a search query
func (e *CohereEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := e.doRequest(ctx, []string{truncateText(query, cohereMaxChars)}, "search_query")
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", domain.ErrEmbeddingMalformed)
	}
	return vectors[0], nil
}

// Dimensions returns the embedding dimension size
func (e *CohereEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used
func (e *CohereEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the embedding service is available
func (e *CohereEmbedding) HealthCheck(ctx context.Context) error {
	// Make a small embedding request to verify connectivity
	_, err := e.EmbedQuery(ctx, "health check")
	return err
}

// Close releases resources held by the embedding service
func (e *CohereEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// doRequest makes one call to the Cohere embed API and validates the
// returned vectors.
func (e *CohereEmbedding) doRequest(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	body, err := json.Marshal(cohereRequest{
		Texts:     texts,
		Model:     e.model,
		InputType: inputType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Cohere-Version", cohereAPIVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: Cohere API returned status %d", domain.ErrEmbeddingUnauthorized, resp.StatusCode)
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: Cohere API returned status %d", domain.ErrEmbeddingRateLimited, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: Cohere API returned status %d: %s", domain.ErrEmbeddingMalformed, resp.StatusCode, truncateText(string(respBody), 200))
	}

	var embResp cohereResponse
	if err := json.Unmarshal(respBody, &embResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrEmbeddingMalformed, err)
	}

	if len(embResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", domain.ErrEmbeddingMalformed, len(embResp.Embeddings), len(texts))
	}
	for i, vec := range embResp.Embeddings {
		if len(vec) != e.dimensions {
			return nil, fmt.Errorf("embedding %d: %w", i, &domain.DimensionError{Want: e.dimensions, Got: len(vec)})
		}
	}

	return embResp.Embeddings, nil
}

// truncateText caps text at max characters, marking the cut with an
// ellipsis so truncated chunks remain distinguishable.
func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
