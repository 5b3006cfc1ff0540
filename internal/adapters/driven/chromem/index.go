// Package chromem implements the VectorIndex port on an embedded
// chromem-go database, for single-node deployments with no external
// vector service.
package chromem

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*Index)(nil)

// Index implements driven.VectorIndex using an embedded chromem-go store
type Index struct {
	collection *chromem.Collection
}

// Config holds embedded index configuration
type Config struct {
	// Collection is the collection name documents are stored under
	Collection string

	// Path enables on-disk persistence when non-empty; otherwise the
	// index lives in memory only
	Path string
}

// NewIndex creates a new embedded VectorIndex
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Collection == "" {
		cfg.Collection = "documents"
	}

	var db *chromem.DB
	var err error
	if cfg.Path != "" {
		db, err = chromem.NewPersistentDB(cfg.Path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open persistent store: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings arrive precomputed, so no embedding function is wired.
	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", cfg.Collection, err)
	}

	return &Index{collection: collection}, nil
}

// Upsert writes records to the collection, overwriting records with the
// same ID
func (i *Index) Upsert(ctx context.Context, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(records))
	for idx, rec := range records {
		docs[idx] = chromem.Document{
			ID:        rec.ID,
			Content:   rec.Metadata.Text,
			Embedding: rec.Values,
			Metadata: map[string]string{
				"source":    rec.Metadata.Source,
				"type":      rec.Metadata.ContentType,
				"pageCount": strconv.Itoa(rec.Metadata.PageCount),
			},
		}
	}

	if err := i.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Query runs a similarity lookup and returns up to topK matches in
// score-descending order
func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedMatch, error) {
	if topK <= 0 {
		topK = 3
	}

	// chromem rejects nResults above the stored document count.
	if count := i.collection.Count(); count == 0 {
		return []domain.RetrievedMatch{}, nil
	} else if topK > count {
		topK = count
	}

	results, err := i.collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	matches := make([]domain.RetrievedMatch, len(results))
	for idx, res := range results {
		pageCount, _ := strconv.Atoi(res.Metadata["pageCount"])
		matches[idx] = domain.RetrievedMatch{
			Score: res.Similarity,
			Metadata: domain.RecordMetadata{
				Text:        res.Content,
				Source:      res.Metadata["source"],
				ContentType: res.Metadata["type"],
				PageCount:   pageCount,
			},
		}
	}
	return matches, nil
}

// HealthCheck verifies the collection is usable
func (i *Index) HealthCheck(ctx context.Context) error {
	if i.collection == nil {
		return domain.ErrIndexUnavailable
	}
	return nil
}
