package domain

import (
	"fmt"
	"time"
)

// Document is the extracted form of an uploaded file. It exists only for
// the duration of one ingestion request and is never persisted as-is.
type Document struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
}

// Chunk is an ordered, overlapping substring of a document's text, the
// unit of embedding and indexing.
type Chunk struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"` // Chunk position within document
}

// ChunkID builds the stable ID for a chunk of a document. Re-uploading the
// same file produces the same IDs, so upserts overwrite instead of
// accumulating stale records.
func ChunkID(filename string, position int) string {
	return fmt.Sprintf("%s-chunk-%d", filename, position)
}

// RecordMetadata is the payload stored alongside each vector.
type RecordMetadata struct {
	Text        string `json:"text"`
	Source      string `json:"source"`
	ContentType string `json:"type"`
	PageCount   int    `json:"pageCount"`
}

// IndexRecord is one (id, vector, metadata) entry in the vector index.
// Immutable after upsert; replaced only by re-upserting the same ID.
type IndexRecord struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata RecordMetadata `json:"metadata"`
}

// RetrievedMatch is one result of a top-K similarity query, transient
// within a single query's response handling.
type RetrievedMatch struct {
	Score    float32        `json:"score"`
	Metadata RecordMetadata `json:"metadata"`
}

// IngestResult summarises a successful ingestion.
type IngestResult struct {
	Filename        string `json:"filename"`
	ChunksProcessed int    `json:"chunks_processed"`
	PageCount       int    `json:"page_count"`
}

// ChatRequest is a question with an optional persona key.
type ChatRequest struct {
	Query   string `json:"query"`
	Persona string `json:"persona,omitempty"`
}

// ChatAnswer is the response to a chat request: the original question, the
// generated answer, and the cleaned context blocks it was grounded on.
type ChatAnswer struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer"`
	Context []string `json:"context"`
}

// Upload records one completed ingestion for operators.
// An audit trail, not a knowledge base; retrieval never reads it.
type Upload struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	ChunkCount  int       `json:"chunk_count"`
	PageCount   int       `json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`
}
