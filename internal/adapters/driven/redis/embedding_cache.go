// Package redis provides Redis-backed driven adapters.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

const embeddingPrefix = "askpdf:embed:"

// EmbeddingCache implements driven.EmbeddingCache on Redis. Vectors are
// stored as JSON arrays under a namespaced key with a TTL.
type EmbeddingCache struct {
	client *redis.Client
}

// NewEmbeddingCache creates a new Redis-backed embedding cache
func NewEmbeddingCache(client *redis.Client) *EmbeddingCache {
	return &EmbeddingCache{client: client}
}

// Get returns the cached vector for key, or domain.ErrNotFound on a miss.
func (c *EmbeddingCache) Get(ctx context.Context, key string) ([]float32, error) {
	data, err := c.client.Get(ctx, embeddingPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached embedding %s: %w", key, err)
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, fmt.Errorf("decode cached embedding %s: %w", key, err)
	}
	return vector, nil
}

// Set stores a vector under key for ttl.
func (c *EmbeddingCache) Set(ctx context.Context, key string, vector []float32, ttl time.Duration) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encode embedding %s: %w", key, err)
	}

	if err := c.client.Set(ctx, embeddingPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache embedding %s: %w", key, err)
	}
	return nil
}
