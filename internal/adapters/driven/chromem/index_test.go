package chromem

import (
	"context"
	"testing"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(Config{Collection: "test"})
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}
	return idx
}

func record(id string, vec []float32, text string, pages int) domain.IndexRecord {
	return domain.IndexRecord{
		ID:     id,
		Values: vec,
		Metadata: domain.RecordMetadata{
			Text:        text,
			Source:      "doc.pdf",
			ContentType: "application/pdf",
			PageCount:   pages,
		},
	}
}

func TestIndex_UpsertAndQuery(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	records := []domain.IndexRecord{
		record("doc.pdf-chunk-0", []float32{1, 0, 0}, "first chunk", 2),
		record("doc.pdf-chunk-1", []float32{0, 1, 0}, "second chunk", 2),
		record("doc.pdf-chunk-2", []float32{0, 0, 1}, "third chunk", 2),
	}
	if err := idx.Upsert(ctx, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches, err := idx.Query(ctx, []float32{1, 0.1, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Metadata.Text != "first chunk" {
		t.Errorf("expected closest match first, got %q", matches[0].Metadata.Text)
	}
	if matches[0].Score < matches[1].Score {
		t.Error("matches should be score descending")
	}
	if matches[0].Metadata.Source != "doc.pdf" || matches[0].Metadata.PageCount != 2 {
		t.Errorf("metadata did not round-trip: %+v", matches[0].Metadata)
	}
}

func TestIndex_Upsert_OverwritesSameID(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.Upsert(ctx, []domain.IndexRecord{record("a", []float32{1, 0}, "old text", 1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := idx.Upsert(ctx, []domain.IndexRecord{record("a", []float32{1, 0}, "new text", 1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches, err := idx.Query(ctx, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match after overwrite, got %d", len(matches))
	}
	if matches[0].Metadata.Text != "new text" {
		t.Errorf("expected overwritten text, got %q", matches[0].Metadata.Text)
	}
}

func TestIndex_Query_EmptyCollection(t *testing.T) {
	idx := newTestIndex(t)

	matches, err := idx.Query(context.Background(), []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestIndex_Query_TopKAboveCount(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.Upsert(ctx, []domain.IndexRecord{record("a", []float32{1, 0}, "only chunk", 1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches, err := idx.Query(ctx, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(matches))
	}
}

func TestIndex_HealthCheck(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewIndex_Persistent(t *testing.T) {
	dir := t.TempDir()
	idx, err := NewIndex(Config{Collection: "test", Path: dir})
	if err != nil {
		t.Fatalf("failed to create persistent index: %v", err)
	}

	ctx := context.Background()
	if err := idx.Upsert(ctx, []domain.IndexRecord{record("a", []float32{1, 0}, "persisted chunk", 1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh handle over the same path sees the stored document.
	reopened, err := NewIndex(Config{Collection: "test", Path: dir})
	if err != nil {
		t.Fatalf("failed to reopen persistent index: %v", err)
	}
	matches, err := reopened.Query(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].Metadata.Text != "persisted chunk" {
		t.Errorf("expected persisted chunk after reopen, got %+v", matches)
	}
}
