package driven

import (
	"context"
	"time"
)

// EmbeddingCache stores query embeddings keyed by text digest. Only query
// embeddings are cached; document batches always hit the service so the
// rate-limit throttle keeps its meaning.
type EmbeddingCache interface {
	// Get returns the cached vector for the key, or domain.ErrNotFound
	Get(ctx context.Context, key string) ([]float32, error)

	// Set stores the vector under the key with a TTL
	Set(ctx context.Context, key string, vector []float32, ttl time.Duration) error
}
