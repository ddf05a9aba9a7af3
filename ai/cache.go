package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// CachedEmbedder wraps an Embedder with an in-process TTL cache keyed by the
// query text. Only EmbedQuery results are cached; document batches during
// ingestion are one-shot and would only evict useful entries.
type CachedEmbedder struct {
	inner  Embedder
	cache  *ristretto.Cache[string, []float32]
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedEmbedder wraps inner with a query cache. A zero or negative ttl
// returns inner unchanged.
func NewCachedEmbedder(inner Embedder, ttl time.Duration) (Embedder, error) {
	if ttl <= 0 {
		return inner, nil
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, []float32]{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &CachedEmbedder{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: slog.Default().With("component", "embed-cache"),
	}, nil
}

// EmbedQuery returns the cached vector when the same query was embedded
// recently, otherwise delegates and caches the result.
func (c *CachedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		c.logger.Debug("embedding cache hit", "length", len(text))
		return vec, nil
	}

	vec, err := c.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(text, vec, 1, c.ttl)
	return vec, nil
}

// EmbedTexts delegates to the wrapped embedder without caching.
func (c *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedTexts(ctx, texts)
}

// Wait blocks until buffered cache writes have been applied. Used by tests.
func (c *CachedEmbedder) Wait() {
	c.cache.Wait()
}

// Close releases the cache.
func (c *CachedEmbedder) Close() {
	c.cache.Close()
}
