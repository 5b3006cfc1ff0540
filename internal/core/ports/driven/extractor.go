package driven

import (
	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// Extractor converts an uploaded file's bytes into plain text plus a page
// count for one family of content types.
type Extractor interface {
	// Extract returns the document text and page count for the file bytes
	Extract(filename string, data []byte) (*domain.Document, error)

	// SupportedTypes returns the MIME types this extractor handles.
	// Wildcards are allowed (e.g. "text/*").
	SupportedTypes() []string

	// Priority determines selection when multiple extractors match a type.
	// Higher wins.
	Priority() int

	// Name returns a unique identifier for this extractor
	Name() string
}

// ExtractorRegistry selects extractors by MIME type
type ExtractorRegistry interface {
	// Register registers an extractor
	Register(e Extractor)

	// Get retrieves the best-matching extractor for a MIME type.
	// Returns nil if no extractor is registered for the type.
	Get(mimeType string) Extractor

	// List returns all registered MIME types
	List() []string
}
