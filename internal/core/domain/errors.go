package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no extractor is registered for the
	// uploaded content type
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrEmbeddingUnauthorized indicates the embedding service rejected
	// the configured credentials
	ErrEmbeddingUnauthorized = errors.New("embedding service unauthorized")

	// ErrEmbeddingRateLimited indicates the embedding service quota is
	// exhausted; retryable by the caller
	ErrEmbeddingRateLimited = errors.New("embedding service rate limited")

	// ErrEmbeddingMalformed indicates the embedding service returned a
	// response that could not be used
	ErrEmbeddingMalformed = errors.New("malformed embedding response")

	// ErrIndexUnavailable indicates the vector index is unreachable or
	// rejected the request
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrGenerationFailed indicates the generation service was unreachable
	// or returned no usable content
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")
)

// DimensionError reports an embedding vector whose length does not match
// the configured dimension. Never auto-corrected: a mismatched vector
// would silently corrupt index alignment.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("invalid embedding dimensions: expected %d, got %d", e.Want, e.Got)
}

// IsRetryable reports whether the error is a transient embedding failure a
// caller may retry with backoff.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrEmbeddingRateLimited)
}
