package ai

import "context"

// Embedder turns text into vector embeddings for semantic search.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedQuery generates an embedding for a single search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for a batch of documents, in input
	// order. Batching is cheaper than repeated EmbedQuery calls.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider owns the lifecycle of the AI services backing a sack.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider. The provider and its
	// services must not be used afterwards.
	Close() error
}
