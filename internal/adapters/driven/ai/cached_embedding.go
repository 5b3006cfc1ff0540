package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Ensure CachedEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*CachedEmbedding)(nil)

// DefaultQueryCacheTTL bounds how long a cached query vector stays valid.
const DefaultQueryCacheTTL = 24 * time.Hour

// CachedEmbedding decorates an EmbeddingService with a query-vector cache.
// Only EmbedQuery is cached: queries repeat, document chunks do not, and a
// stale document vector would silently poison the index. Cache failures
// fall through to the inner service.
type CachedEmbedding struct {
	inner driven.EmbeddingService
	cache driven.EmbeddingCache
	ttl   time.Duration
}

// NewCachedEmbedding wraps inner with a query cache. ttl <= 0 selects
// DefaultQueryCacheTTL.
func NewCachedEmbedding(inner driven.EmbeddingService, cache driven.EmbeddingCache, ttl time.Duration) driven.EmbeddingService {
	if ttl <= 0 {
		ttl = DefaultQueryCacheTTL
	}
	return &CachedEmbedding{inner: inner, cache: cache, ttl: ttl}
}

// Embed passes document batches straight through to the inner service.
func (c *CachedEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.Embed(ctx, texts)
}

// EmbedQuery returns a cached vector when one exists for this model and
// query, otherwise embeds and stores the result.
func (c *CachedEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	key := c.cacheKey(query)

	vector, err := c.cache.Get(ctx, key)
	if err == nil {
		return vector, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		// Degrade to the inner service on cache errors.
		vector, embErr := c.inner.EmbedQuery(ctx, query)
		if embErr != nil {
			return nil, embErr
		}
		return vector, nil
	}

	vector, err = c.inner.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed write never fails the query.
	_ = c.cache.Set(ctx, key, vector, c.ttl)

	return vector, nil
}

// Dimensions returns the embedding dimension size
func (c *CachedEmbedding) Dimensions() int {
	return c.inner.Dimensions()
}

// Model returns the model name being used
func (c *CachedEmbedding) Model() string {
	return c.inner.Model()
}

// HealthCheck verifies the inner embedding service is available
func (c *CachedEmbedding) HealthCheck(ctx context.Context) error {
	return c.inner.HealthCheck(ctx)
}

// Close releases resources held by the inner embedding service
func (c *CachedEmbedding) Close() error {
	return c.inner.Close()
}

// cacheKey derives a stable key from the model and the literal query, so
// switching models never serves vectors from another embedding space.
func (c *CachedEmbedding) cacheKey(query string) string {
	sum := sha256.Sum256([]byte(c.inner.Model() + "|" + query))
	return hex.EncodeToString(sum[:])
}
