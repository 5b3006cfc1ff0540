package mocks

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// MockVectorIndex is an in-memory mock implementation of VectorIndex
type MockVectorIndex struct {
	mu          sync.Mutex
	records     map[string]domain.IndexRecord
	upsertErr   error
	queryErr    error
	UpsertCalls int
	QueryCalls  int
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{
		records: make(map[string]domain.IndexRecord),
	}
}

func (m *MockVectorIndex) Upsert(ctx context.Context, records []domain.IndexRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, rec := range records {
		m.records[rec.ID] = rec
	}
	return nil
}

func (m *MockVectorIndex) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCalls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}

	matches := make([]domain.RetrievedMatch, 0, len(m.records))
	for _, rec := range m.records {
		matches = append(matches, domain.RetrievedMatch{
			Score:    cosineSimilarity(vector, rec.Values),
			Metadata: rec.Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	return nil
}

// Helper methods for testing

// Count returns the number of stored records
func (m *MockVectorIndex) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Get returns the stored record for an ID
func (m *MockVectorIndex) Get(id string) (domain.IndexRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	return rec, ok
}

// SetUpsertErr makes subsequent Upsert calls fail with err
func (m *MockVectorIndex) SetUpsertErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertErr = err
}

// SetQueryErr makes subsequent Query calls fail with err
func (m *MockVectorIndex) SetQueryErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryErr = err
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
