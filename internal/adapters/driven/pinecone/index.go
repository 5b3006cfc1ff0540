// Package pinecone implements the VectorIndex port against Pinecone's
// HTTP data-plane API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*Index)(nil)

// Index implements driven.VectorIndex using Pinecone
type Index struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

// Config holds Pinecone connection configuration
type Config struct {
	// Host is the index endpoint (e.g., https://my-index-abc123.svc.us-east-1.pinecone.io)
	Host string

	// APIKey authenticates data-plane requests
	APIKey string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(host, apiKey string) Config {
	return Config{
		Host:    host,
		APIKey:  apiKey,
		Timeout: 30 * time.Second,
	}
}

// NewIndex creates a new Pinecone-backed VectorIndex
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("Pinecone host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Pinecone API key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Index{
		host:   strings.TrimSuffix(cfg.Host, "/"),
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// pineconeVector is a vector in Pinecone wire format
type pineconeVector struct {
	ID       string                `json:"id"`
	Values   []float32             `json:"values"`
	Metadata domain.RecordMetadata `json:"metadata"`
}

type upsertRequest struct {
	Vectors []pineconeVector `json:"vectors"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string                `json:"id"`
		Score    float32               `json:"score"`
		Metadata domain.RecordMetadata `json:"metadata"`
	} `json:"matches"`
}

// Upsert writes records to the index, overwriting records with the same ID
func (i *Index) Upsert(ctx context.Context, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	vectors := make([]pineconeVector, len(records))
	for idx, rec := range records {
		vectors[idx] = pineconeVector{
			ID:       rec.ID,
			Values:   rec.Values,
			Metadata: rec.Metadata,
		}
	}

	var resp upsertResponse
	if err := i.doRequest(ctx, "/vectors/upsert", upsertRequest{Vectors: vectors}, &resp); err != nil {
		return err
	}

	if resp.UpsertedCount != len(vectors) {
		return fmt.Errorf("%w: upserted %d of %d vectors", domain.ErrIndexUnavailable, resp.UpsertedCount, len(vectors))
	}
	return nil
}

// Query runs a similarity lookup and returns the topK closest matches in
// score-descending order
func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedMatch, error) {
	if topK <= 0 {
		topK = 3
	}

	var resp queryResponse
	err := i.doRequest(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.RetrievedMatch, len(resp.Matches))
	for idx, m := range resp.Matches {
		matches[idx] = domain.RetrievedMatch{
			Score:    m.Score,
			Metadata: m.Metadata,
		}
	}
	return matches, nil
}

// HealthCheck verifies the index endpoint is reachable
func (i *Index) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.host+"/describe_index_stats", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Api-Key", i.apiKey)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrIndexUnavailable, resp.StatusCode)
	}
	return nil
}

// doRequest sends one JSON request to the Pinecone data plane
func (i *Index) doRequest(ctx context.Context, path string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.host+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", i.apiKey)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", domain.ErrIndexUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(data)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return fmt.Errorf("%w: Pinecone returned status %d: %s", domain.ErrIndexUnavailable, resp.StatusCode, msg)
	}

	if err := json.Unmarshal(data, respBody); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", domain.ErrIndexUnavailable, err)
	}
	return nil
}
