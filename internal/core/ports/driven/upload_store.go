package driven

import (
	"context"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// UploadStore persists the ingestion audit trail
type UploadStore interface {
	// Save records a completed ingestion
	Save(ctx context.Context, upload *domain.Upload) error

	// List returns the most recent uploads, newest first
	List(ctx context.Context, limit int) ([]*domain.Upload, error)

	// Count returns the total number of recorded uploads
	Count(ctx context.Context) (int, error)
}
