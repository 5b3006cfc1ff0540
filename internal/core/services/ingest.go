package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
	"github.com/askpdf/askpdf-core/internal/core/ports/driving"
	"github.com/askpdf/askpdf-core/internal/textproc"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService implements the IngestService interface.
//
// Pipeline per request: validate -> chunk -> clean -> embed (batched by
// the embedding service) -> upsert. All-or-nothing: any embedding or index
// failure aborts the operation with zero records upserted, so the index
// never holds a partial chunk set.
type ingestService struct {
	chunker  *textproc.Chunker
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	uploads  driven.UploadStore // optional, may be nil
	logger   zerolog.Logger
}

// NewIngestService creates a new IngestService. uploads may be nil when no
// history store is configured.
func NewIngestService(
	chunker *textproc.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	uploads driven.UploadStore,
	logger zerolog.Logger,
) driving.IngestService {
	return &ingestService{
		chunker:  chunker,
		embedder: embedder,
		index:    index,
		uploads:  uploads,
		logger:   logger,
	}
}

// Ingest processes one extracted document into the vector index.
func (s *ingestService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.IngestResult, error) {
	if req.Filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: document is empty or text could not be extracted", domain.ErrInvalidInput)
	}

	// Chunking runs on raw text so offsets and overlap stay stable;
	// each chunk is cleaned once and the cleaned text is what gets
	// embedded and stored.
	raw := s.chunker.Split(req.Text)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no text chunks could be created from document", domain.ErrInvalidInput)
	}

	chunks := make([]domain.Chunk, 0, len(raw))
	for _, c := range raw {
		cleaned := textproc.Clean(c.Text)
		if cleaned == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:       domain.ChunkID(req.Filename, c.Position),
			Text:     cleaned,
			Position: c.Position,
		})
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document contains no usable text", domain.ErrInvalidInput)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %d chunks of %s: %w", len(texts), req.Filename, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", domain.ErrEmbeddingMalformed, len(vectors), len(texts))
	}
	for i, vec := range vectors {
		if len(vec) != s.embedder.Dimensions() {
			return nil, fmt.Errorf("chunk %d: %w", i, &domain.DimensionError{Want: s.embedder.Dimensions(), Got: len(vec)})
		}
	}

	records := make([]domain.IndexRecord, len(chunks))
	for i, c := range chunks {
		records[i] = domain.IndexRecord{
			ID:     c.ID,
			Values: vectors[i],
			Metadata: domain.RecordMetadata{
				Text:        c.Text,
				Source:      req.Filename,
				ContentType: req.ContentType,
				PageCount:   req.PageCount,
			},
		}
	}

	if err := s.index.Upsert(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to upsert %d records for %s: %w", len(records), req.Filename, err)
	}

	if s.uploads != nil {
		upload := &domain.Upload{
			Filename:    req.Filename,
			ContentType: req.ContentType,
			ChunkCount:  len(records),
			PageCount:   req.PageCount,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.uploads.Save(ctx, upload); err != nil {
			// History is an audit trail; its failure must not undo a
			// completed ingestion.
			s.logger.Warn().Err(err).Str("filename", req.Filename).Msg("failed to record upload")
		}
	}

	s.logger.Info().
		Str("filename", req.Filename).
		Int("chunks", len(records)).
		Int("pages", req.PageCount).
		Msg("document ingested")

	return &domain.IngestResult{
		Filename:        req.Filename,
		ChunksProcessed: len(records),
		PageCount:       req.PageCount,
	}, nil
}

// History returns recent ingestions, newest first.
func (s *ingestService) History(ctx context.Context, limit int) ([]*domain.Upload, error) {
	if s.uploads == nil {
		return []*domain.Upload{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.uploads.List(ctx, limit)
}
