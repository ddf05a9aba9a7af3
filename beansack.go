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


// Package beansack is the retrieval core of a news aggregation service: an
// embedded store of crawled content ("beans") with filtered, semantic, text
// and cluster-collapsed retrieval over it.
//
// A Sack is constructed once at process start and passed to whatever needs
// it; every dependency (store, embedder) is held by the Sack rather than by
// package-level state.
package beansack

import (
	"log/slog"

	"github.com/cafecito/beansack/ai"
	"github.com/cafecito/beansack/ai/openai"
	"github.com/cafecito/beansack/ingestion"
	"github.com/cafecito/beansack/search"
	"github.com/cafecito/beansack/storage"
	"github.com/cafecito/beansack/storage/badger"
)

// Sack owns the store and AI provider backing one beansack instance.
type Sack struct {
	backend     *badger.Backend
	beanRepo    storage.BeanRepository
	chatterRepo storage.ChatterRepository
	provider    ai.Provider
	logger      *slog.Logger
}

// SackOption configures a Sack.
type SackOption func(*sackOptions)

type sackOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) SackOption {
	return func(o *sackOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider directly, bypassing the OpenAI
// provider construction. Used by tests and by callers with their own
// provider lifecycle.
func WithProvider(provider ai.Provider) SackOption {
	return func(o *sackOptions) {
		o.provider = provider
	}
}

// WithInMemoryStore opens a transient in-memory store instead of the given
// path.
func WithInMemoryStore() SackOption {
	return func(o *sackOptions) {
		o.inMemory = true
	}
}

// NewSack opens the store at filePath and wires the repositories and AI
// provider.
func NewSack(filePath string, opts ...SackOption) (*Sack, error) {
	options := &sackOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	beanRepo := badger.NewBeanRepository(backend)

	chatterRepo, err := badger.NewChatterRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			chatterRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Sack{
		backend:     backend,
		beanRepo:    beanRepo,
		chatterRepo: chatterRepo,
		provider:    provider,
		logger:      slog.Default(),
	}, nil
}

// Close releases the provider, repositories and store.
func (s *Sack) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.chatterRepo.Close(); err != nil {
		s.logger.Error("error closing chatter repository", "err", err)
		return err
	}
	if err := s.beanRepo.Close(); err != nil {
		s.logger.Error("error closing bean repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// BeanRepository exposes the bean store.
func (s *Sack) BeanRepository() storage.BeanRepository {
	return s.beanRepo
}

// ChatterRepository exposes the engagement snapshot store.
func (s *Sack) ChatterRepository() storage.ChatterRepository {
	return s.chatterRepo
}

// NewEngine creates a retrieval engine over this sack.
func (s *Sack) NewEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(s.beanRepo, s.chatterRepo, s.provider, opts...)
}

// NewIngestionPipeline creates an ingestion pipeline over this sack.
func (s *Sack) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.beanRepo, s.provider, opts...)
}
