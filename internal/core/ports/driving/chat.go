package driving

import (
	"context"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// ChatService answers questions from retrieved document context
type ChatService interface {
	// Ask embeds the question, retrieves context, and generates an answer.
	// Generation failures degrade to the fixed fallback answer instead of
	// surfacing an error.
	Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatAnswer, error)

	// RetrieveContext returns the cleaned context blocks for a query in
	// score-descending order. Blocks are safe to embed in a prompt.
	RetrieveContext(ctx context.Context, query string, topK int) ([]string, error)
}
