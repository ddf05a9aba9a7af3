package mock

import "github.com/cafecito/beansack/ai"

// Provider is a test double for ai.Provider wired to a mock embedder.
type Provider struct {
	embedder *Embedder
}

// NewProvider creates a provider backed by a default mock embedder.
func NewProvider() ai.Provider {
	return &Provider{embedder: NewEmbedder()}
}

// Embedder returns the embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// MockEmbedder exposes the concrete embedder for assertions and behavior
// injection.
func (p *Provider) MockEmbedder() *Embedder {
	return p.embedder
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}
