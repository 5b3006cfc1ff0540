package domain

import "testing"

func TestChunkID(t *testing.T) {
	id := ChunkID("report.pdf", 0)
	if id != "report.pdf-chunk-0" {
		t.Errorf("unexpected chunk ID: %s", id)
	}

	// IDs must be stable so re-uploads overwrite the same records.
	if ChunkID("report.pdf", 7) != ChunkID("report.pdf", 7) {
		t.Error("chunk IDs must be deterministic")
	}
	if ChunkID("a.pdf", 1) == ChunkID("b.pdf", 1) {
		t.Error("chunk IDs must differ across filenames")
	}
}
