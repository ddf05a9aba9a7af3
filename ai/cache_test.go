package ai

import (
	"context"
	"testing"
	"time"
)

type countingEmbedder struct {
	queries int
	batches int
}

func (c *countingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	c.queries++
	return []float32{1, 2, 3}, nil
}

func (c *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	c.batches++
	vecs := make([][]float32, len(texts))
	for i := range vecs {
		vecs[i] = []float32{1, 2, 3}
	}
	return vecs, nil
}

func TestCachedEmbedderDedupesQueries(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCachedEmbedder(inner, time.Minute)
	if err != nil {
		t.Fatalf("NewCachedEmbedder() = %v", err)
	}

	ctx := context.Background()
	if _, err := cached.EmbedQuery(ctx, "climate change"); err != nil {
		t.Fatal(err)
	}
	// ristretto admits asynchronously
	cached.(*CachedEmbedder).Wait()

	for i := 0; i < 5; i++ {
		if _, err := cached.EmbedQuery(ctx, "climate change"); err != nil {
			t.Fatal(err)
		}
	}
	if inner.queries != 1 {
		t.Errorf("inner queries = %d, want 1", inner.queries)
	}
}

func TestCachedEmbedderSkipsBatches(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCachedEmbedder(inner, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := cached.EmbedTexts(ctx, []string{"a", "b"}); err != nil {
			t.Fatal(err)
		}
	}
	if inner.batches != 3 {
		t.Errorf("inner batches = %d, want 3 (no caching for documents)", inner.batches)
	}
}

func TestCachedEmbedderZeroTTLPassthrough(t *testing.T) {
	inner := &countingEmbedder{}
	got, err := NewCachedEmbedder(inner, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != Embedder(inner) {
		t.Error("zero TTL should return the inner embedder unchanged")
	}
}
