package driving

import (
	"context"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// IngestRequest carries one extracted document into the pipeline.
// Extraction happens upstream (see the extractors package); the pipeline
// itself only sees text.
type IngestRequest struct {
	Filename    string
	ContentType string
	Text        string
	PageCount   int
}

// IngestService runs the ingestion pipeline: chunk, embed, upsert.
// All-or-nothing: a mid-pipeline failure leaves zero records upserted.
type IngestService interface {
	// Ingest processes one document and returns the chunk count on success
	Ingest(ctx context.Context, req IngestRequest) (*domain.IngestResult, error)

	// History returns recent ingestions, newest first. Empty when no
	// upload store is configured.
	History(ctx context.Context, limit int) ([]*domain.Upload, error)
}
