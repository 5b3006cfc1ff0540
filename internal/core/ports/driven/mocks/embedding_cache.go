package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// MockEmbeddingCache is an in-memory mock implementation of EmbeddingCache
type MockEmbeddingCache struct {
	mu       sync.Mutex
	vectors  map[string][]float32
	GetCalls int
	SetCalls int
}

// NewMockEmbeddingCache creates a new MockEmbeddingCache
func NewMockEmbeddingCache() *MockEmbeddingCache {
	return &MockEmbeddingCache{
		vectors: make(map[string][]float32),
	}
}

func (m *MockEmbeddingCache) Get(ctx context.Context, key string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	vec, ok := m.vectors[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return vec, nil
}

func (m *MockEmbeddingCache) Set(ctx context.Context, key string, vector []float32, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.vectors[key] = vector
	return nil
}
