package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
	"github.com/askpdf/askpdf-core/internal/core/ports/driving"
	"github.com/askpdf/askpdf-core/internal/textproc"
)

// DefaultTopK is the number of context chunks retrieved per question.
const DefaultTopK = 3

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService implements the ChatService interface
type chatService struct {
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	generator driven.Generator
	topK      int
	logger    zerolog.Logger
}

// NewChatService creates a new ChatService. topK <= 0 selects DefaultTopK.
func NewChatService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	generator driven.Generator,
	topK int,
	logger zerolog.Logger,
) driving.ChatService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &chatService{
		embedder:  embedder,
		index:     index,
		generator: generator,
		topK:      topK,
		logger:    logger,
	}
}

// Ask answers a question from retrieved document context.
func (s *chatService) Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatAnswer, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	// Unknown persona keys resolve to the default here at the boundary,
	// never deeper in prompt construction.
	persona := domain.ParsePersona(req.Persona)

	blocks, err := s.RetrieveContext(ctx, query, s.topK)
	if err != nil {
		return nil, err
	}

	prompt := domain.BuildPrompt(persona, blocks, query)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		// Generation failures degrade: the retrieved context is still
		// useful, so the caller gets the fixed fallback answer instead
		// of an error.
		s.logger.Warn().Err(err).Str("model", s.generator.Model()).Msg("generation failed, substituting fallback answer")
		answer = domain.FallbackAnswer
	}

	return &domain.ChatAnswer{
		Query:   query,
		Answer:  domain.SanitizeAnswer(answer),
		Context: blocks,
	}, nil
}

// RetrieveContext embeds the query, runs the top-K similarity lookup and
// returns the cleaned context blocks in score-descending order. Blocks
// that clean to nothing are dropped; the result is safe to place in a
// prompt verbatim.
func (s *chatService) RetrieveContext(ctx context.Context, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = s.topK
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := s.index.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	blocks := make([]string, 0, len(matches))
	for _, match := range matches {
		if cleaned := textproc.Clean(match.Metadata.Text); cleaned != "" {
			blocks = append(blocks, cleaned)
		}
	}
	return blocks, nil
}
