package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Supported provider names
const (
	ProviderCohere = "cohere"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// EmbeddingConfig selects and configures an embedding provider
type EmbeddingConfig struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	Dimensions int
	BatchDelay time.Duration
}

// GenerationConfig selects and configures a generation provider
type GenerationConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewEmbeddingService creates an embedding service from config. An empty
// provider selects Cohere.
func NewEmbeddingService(cfg EmbeddingConfig) (driven.EmbeddingService, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderCohere
	}

	switch provider {
	case ProviderCohere:
		svc, err := NewCohereEmbedding(cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.BatchDelay > 0 {
			svc.(*CohereEmbedding).SetBatchDelay(cfg.BatchDelay)
		}
		return svc, nil
	case ProviderOpenAI:
		return NewOpenAIEmbedding(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Dimensions)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}
}

// NewGenerator creates a generation service from config. An empty provider
// selects Gemini.
func NewGenerator(cfg GenerationConfig) (driven.Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiLLM(cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}
}
