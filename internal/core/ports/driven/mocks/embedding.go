package mocks

import (
	"context"
	"hash/fnv"
)

// MockEmbeddingService is a mock implementation of EmbeddingService for testing
type MockEmbeddingService struct {
	dimensions int
	vectorLen  int // when set, returned vectors use this length instead
	model      string
	err        error
	EmbedCalls int
	QueryCalls int
	LastTexts  []string
	LastQuery  string
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		dimensions: 384,
		model:      "mock-embedding-model",
	}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.EmbedCalls++
	m.LastTexts = texts
	if m.err != nil {
		return nil, m.err
	}

	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.generateEmbedding(text)
	}
	return result, nil
}

func (m *MockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	m.QueryCalls++
	m.LastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.generateEmbedding(query), nil
}

func (m *MockEmbeddingService) Dimensions() int {
	return m.dimensions
}

func (m *MockEmbeddingService) Model() string {
	return m.model
}

func (m *MockEmbeddingService) HealthCheck(ctx context.Context) error {
	return m.err
}

func (m *MockEmbeddingService) Close() error {
	return nil
}

// generateEmbedding generates a deterministic embedding based on text hash
func (m *MockEmbeddingService) generateEmbedding(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	length := m.dimensions
	if m.vectorLen != 0 {
		length = m.vectorLen
	}
	embedding := make([]float32, length)
	for i := range embedding {
		seed = seed*1103515245 + 12345
		embedding[i] = float32(seed%1000) / 1000.0
	}
	return embedding
}

// Helper methods for testing

// SetErr makes all subsequent calls fail with err
func (m *MockEmbeddingService) SetErr(err error) {
	m.err = err
}

// SetVectorLen makes returned vectors use a different length than the
// advertised dimensions, for dimension-guard tests
func (m *MockEmbeddingService) SetVectorLen(n int) {
	m.vectorLen = n
}
