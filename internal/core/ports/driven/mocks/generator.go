package mocks

import (
	"context"
	"strings"

	"github.com/askpdf/askpdf-core/internal/core/domain"
)

// MockGenerator is a mock implementation of Generator for testing. Its
// default behaviour mirrors the prompt contract: with no context blocks in
// the prompt it answers with the fixed fallback sentence.
type MockGenerator struct {
	GenerateFunc  func(ctx context.Context, prompt string) (string, error)
	Response      string
	Err           error
	GenerateCalls int
	LastPrompt    string
}

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.GenerateCalls++
	m.LastPrompt = prompt

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	if !strings.Contains(prompt, "--- BLOCK") {
		return domain.FallbackAnswer, nil
	}
	return "mock answer grounded in context", nil
}

func (m *MockGenerator) Model() string {
	return "mock-generation-model"
}

func (m *MockGenerator) Ping(ctx context.Context) error {
	return m.Err
}

func (m *MockGenerator) Close() error {
	return nil
}
