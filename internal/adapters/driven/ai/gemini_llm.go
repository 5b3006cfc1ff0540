package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Ensure GeminiLLM implements Generator
var _ driven.Generator = (*GeminiLLM)(nil)

// GeminiLLM implements Generator using Google's Gemini generateContent API
type GeminiLLM struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiLLM creates a new Gemini generation service
func NewGeminiLLM(apiKey, model, baseURL string) (driven.Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	return &GeminiLLM{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// geminiRequest is the request body for the generateContent API
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the response from the generateContent API
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Generate produces a completion for the prompt. The first candidate's
// first text part is the answer; anything else is a generation failure.
func (g *GeminiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrGenerationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: Gemini API returned status %d: %s", domain.ErrGenerationFailed, resp.StatusCode, truncateText(string(respBody), 200))
	}

	var genResp geminiResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", domain.ErrGenerationFailed, err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("%w: %s (status: %s)", domain.ErrGenerationFailed, genResp.Error.Message, genResp.Error.Status)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: response contains no candidates", domain.ErrGenerationFailed)
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// Model returns the model name being used
func (g *GeminiLLM) Model() string {
	return g.model
}

// Ping verifies the generation service is reachable
func (g *GeminiLLM) Ping(ctx context.Context) error {
	_, err := g.Generate(ctx, "ping")
	return err
}

// Close releases resources held by the generation service
func (g *GeminiLLM) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
