package extractors

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*MarkdownExtractor)(nil)

// MarkdownExtractor flattens markdown uploads to plain text by walking the
// parsed AST, so formatting syntax never reaches the chunker.
type MarkdownExtractor struct {
	md goldmark.Markdown
}

// NewMarkdownExtractor creates a new markdown extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{md: goldmark.New()}
}

// Name returns the extractor name.
func (e *MarkdownExtractor) Name() string {
	return "markdown"
}

// SupportedTypes returns the MIME types this extractor handles.
func (e *MarkdownExtractor) SupportedTypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (e *MarkdownExtractor) Priority() int {
	return 10
}

// Extract parses the markdown document and collects its text content.
// Markdown has no pages; the count is always 1.
func (e *MarkdownExtractor) Extract(filename string, data []byte) (*domain.Document, error) {
	doc := e.md.Parser().Parse(gmtext.NewReader(data))

	var text strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				text.Write(node.Segment.Value(data))
				if node.SoftLineBreak() || node.HardLineBreak() {
					text.WriteString("\n")
				}
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if !entering {
				text.WriteString("\n\n")
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				lines := node.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					text.Write(seg.Value(data))
				}
				text.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return &domain.Document{
		Filename:  filename,
		Text:      strings.TrimSpace(text.String()),
		PageCount: 1,
	}, nil
}
