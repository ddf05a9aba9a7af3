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


package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/cafecito/beansack/ai"
	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline stores crawled beans and backfills missing embeddings
// asynchronously. Storing never waits on the embedding service; a bean is
// queryable by filter and text the moment it lands, and by vector once the
// backfill completes.
type Pipeline struct {
	beans    storage.BeanRepository
	embedder ai.Embedder
	pool     *ants.Pool
	pending  sync.WaitGroup
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for embedding backfill.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	beans storage.BeanRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if beans == nil {
		return nil, ErrBeanRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		beans:    beans,
		embedder: provider.Embedder(),
		pool:     pool,
		logger:   slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// StoreBeans stores the beans not already present and schedules embedding
// backfill for the stored ones lacking a vector. Backfill errors are logged,
// never returned; the beans stay queryable without vectors until a later
// pass succeeds.
func (p *Pipeline) StoreBeans(ctx context.Context, beans ...*core.Bean) ([]*core.Bean, error) {
	stored, err := p.beans.StoreBeans(ctx, beans...)
	if err != nil {
		return nil, err
	}

	var backlog []*core.Bean
	for _, bean := range stored {
		if len(bean.Embedding) == 0 {
			backlog = append(backlog, bean)
		}
	}
	if len(backlog) == 0 {
		return stored, nil
	}

	p.pending.Add(1)
	if err := p.pool.Submit(func() {
		defer p.pending.Done()
		p.backfill(context.Background(), backlog)
	}); err != nil {
		p.pending.Done()
		p.logger.Error("embedding backfill not scheduled", "count", len(backlog), "err", err)
	}

	return stored, nil
}

// backfill embeds the digests of the beans in one batch and persists the
// vectors individually, so one failed write doesn't lose the rest.
func (p *Pipeline) backfill(ctx context.Context, beans []*core.Bean) {
	digests := make([]string, len(beans))
	for i, bean := range beans {
		digests[i] = bean.Digest()
	}

	vectors, err := p.embedder.EmbedTexts(ctx, digests)
	if err != nil {
		p.logger.Error("embedding backfill failed", "count", len(beans), "err", err)
		return
	}

	for i, bean := range beans {
		if err := p.beans.UpdateEmbedding(ctx, core.IDFromURL(bean.URL), vectors[i]); err != nil {
			p.logger.Error("storing backfilled embedding failed", "url", bean.URL, "err", err)
		}
	}
}

// Wait blocks until scheduled backfills have finished. Used by tests and
// one-shot tools that must not exit with work in flight.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for in-flight backfills and frees the worker pool. The
// pipeline must not be used afterwards.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}
