package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

func TestNewEmbeddingService(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      EmbeddingConfig
		wantType string
		wantErr  error
	}{
		{
			name:     "cohere",
			cfg:      EmbeddingConfig{Provider: "cohere", APIKey: "key"},
			wantType: "*ai.CohereEmbedding",
		},
		{
			name:     "empty provider defaults to cohere",
			cfg:      EmbeddingConfig{APIKey: "key"},
			wantType: "*ai.CohereEmbedding",
		},
		{
			name:     "provider is case insensitive",
			cfg:      EmbeddingConfig{Provider: " Cohere ", APIKey: "key"},
			wantType: "*ai.CohereEmbedding",
		},
		{
			name:     "openai",
			cfg:      EmbeddingConfig{Provider: "openai", APIKey: "key"},
			wantType: "*ai.OpenAIEmbedding",
		},
		{
			name:    "unknown provider",
			cfg:     EmbeddingConfig{Provider: "huggingface", APIKey: "key"},
			wantErr: domain.ErrInvalidProvider,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := NewEmbeddingService(tc.cfg)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			switch tc.wantType {
			case "*ai.CohereEmbedding":
				if _, ok := svc.(*CohereEmbedding); !ok {
					t.Errorf("expected CohereEmbedding, got %T", svc)
				}
			case "*ai.OpenAIEmbedding":
				if _, ok := svc.(*OpenAIEmbedding); !ok {
					t.Errorf("expected OpenAIEmbedding, got %T", svc)
				}
			}
		})
	}
}

func TestNewEmbeddingService_BatchDelay(t *testing.T) {
	svc, err := NewEmbeddingService(EmbeddingConfig{
		Provider:   "cohere",
		APIKey:     "key",
		BatchDelay: 500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if delay := svc.(*CohereEmbedding).batchDelay; delay != 500*time.Millisecond {
		t.Errorf("expected configured batch delay, got %s", delay)
	}
}

func TestNewGenerator(t *testing.T) {
	svc, err := NewGenerator(GenerationConfig{Provider: "gemini", APIKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*GeminiLLM); !ok {
		t.Errorf("expected GeminiLLM, got %T", svc)
	}

	// Empty provider defaults to Gemini.
	svc, err = NewGenerator(GenerationConfig{APIKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*GeminiLLM); !ok {
		t.Errorf("expected GeminiLLM, got %T", svc)
	}

	_, err = NewGenerator(GenerationConfig{Provider: "anthropic", APIKey: "key"})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}
