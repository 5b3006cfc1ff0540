package mocks

import (
	"context"
	"sync"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// MockUploadStore is an in-memory mock implementation of UploadStore
type MockUploadStore struct {
	mu      sync.Mutex
	uploads []*domain.Upload
	saveErr error
}

// NewMockUploadStore creates a new MockUploadStore
func NewMockUploadStore() *MockUploadStore {
	return &MockUploadStore{}
}

func (m *MockUploadStore) Save(ctx context.Context, upload *domain.Upload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	upload.ID = int64(len(m.uploads) + 1)
	m.uploads = append([]*domain.Upload{upload}, m.uploads...)
	return nil
}

func (m *MockUploadStore) List(ctx context.Context, limit int) ([]*domain.Upload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.uploads) {
		limit = len(m.uploads)
	}
	out := make([]*domain.Upload, limit)
	copy(out, m.uploads[:limit])
	return out, nil
}

func (m *MockUploadStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploads), nil
}

// SetSaveErr makes subsequent Save calls fail with err
func (m *MockUploadStore) SetSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
