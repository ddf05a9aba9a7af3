// Copyright 2025 Cafecito Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"log/slog"

	"github.com/cafecito/beansack/ai"
)

// Provider implements ai.Provider over OpenAI-compatible services. Query
// embeddings are cached per the config's CacheTTL.
type Provider struct {
	config   *ai.Config
	embedder ai.Embedder
	cache    *ai.CachedEmbedder
	logger   *slog.Logger
}

// NewProvider creates the production AI provider. The config is validated
// and normalized before use.
//
// Returns ai.Provider (not *Provider) to enforce abstraction.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	wrapped, err := ai.NewCachedEmbedder(embedder, config.CacheTTL)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		config:   config,
		embedder: wrapped,
		logger:   slog.Default().With("component", "openai-provider"),
	}
	if cached, ok := wrapped.(*ai.CachedEmbedder); ok {
		p.cache = cached
	}
	return p, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close releases the embedding cache. The HTTP client needs no cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	if p.cache != nil {
		p.cache.Close()
	}
	return nil
}
