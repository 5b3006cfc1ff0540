package postgres

import (
	"context"
	"fmt"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UploadStore = (*UploadStore)(nil)

// UploadStore implements driven.UploadStore using Postgres
type UploadStore struct {
	db *DB
}

// NewUploadStore creates a new Postgres-backed upload store
func NewUploadStore(db *DB) *UploadStore {
	return &UploadStore{db: db}
}

// Save records a completed ingestion. The generated ID and stored
// timestamp are written back to upload.
func (s *UploadStore) Save(ctx context.Context, upload *domain.Upload) error {
	query := `
		INSERT INTO uploads (filename, content_type, chunk_count, page_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		upload.Filename,
		upload.ContentType,
		upload.ChunkCount,
		upload.PageCount,
		upload.CreatedAt,
	).Scan(&upload.ID, &upload.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	return nil
}

// List returns the most recent uploads, newest first
func (s *UploadStore) List(ctx context.Context, limit int) ([]*domain.Upload, error) {
	query := `
		SELECT id, filename, content_type, chunk_count, page_count, created_at
		FROM uploads
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	uploads := []*domain.Upload{}
	for rows.Next() {
		var u domain.Upload
		if err := rows.Scan(&u.ID, &u.Filename, &u.ContentType, &u.ChunkCount, &u.PageCount, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate uploads: %w", err)
	}
	return uploads, nil
}

// Count returns the total number of recorded uploads
func (s *UploadStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM uploads`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count uploads: %w", err)
	}
	return count, nil
}
