package driven

import (
	"context"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// VectorIndex persists (id, vector, metadata) records and answers
// nearest-neighbour queries. The similarity metric and internal indexing
// belong to the external engine; this port only shapes requests and
// responses.
type VectorIndex interface {
	// Upsert writes records keyed by ID. Idempotent: re-upserting an
	// existing ID overwrites it.
	Upsert(ctx context.Context, records []domain.IndexRecord) error

	// Query returns at most topK matches ordered by descending similarity.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedMatch, error)

	// HealthCheck verifies the index is reachable
	HealthCheck(ctx context.Context) error
}
