package extractors

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*PDFExtractor)(nil)

// PDFExtractor extracts plain text from PDF uploads, page by page.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Name returns the extractor name.
func (e *PDFExtractor) Name() string {
	return "pdf"
}

// SupportedTypes returns the MIME types this extractor handles.
func (e *PDFExtractor) SupportedTypes() []string {
	return []string{"application/pdf", "application/x-pdf"}
}

// Priority returns the selection priority.
func (e *PDFExtractor) Priority() int {
	return 10
}

// Extract reads every page's plain text and reports the page count.
func (e *PDFExtractor) Extract(filename string, data []byte) (*domain.Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", filename, err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d of %s: %w", i, filename, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return &domain.Document{
		Filename:  filename,
		Text:      text.String(),
		PageCount: numPages,
	}, nil
}
