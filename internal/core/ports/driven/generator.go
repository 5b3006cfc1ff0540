package driven

import (
	"context"
)

// Generator produces free-text answers from a single composed prompt.
// Treated as a black box; callers post-process its output.
type Generator interface {
	// Generate returns the generated text for the prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the generation service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the generator
	Close() error
}
