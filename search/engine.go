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


package search

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/cafecito/beansack/ai"
	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
	"github.com/cafecito/beansack/storage"
	"github.com/panjf2000/ants/v2"
)

// DefaultMinScore is the vector-search similarity floor applied when the
// caller passes no threshold.
const DefaultMinScore = 0.7

// scoreChunk is the smallest work unit handed to the scoring pool. Scans
// below this size are scored inline.
const scoreChunk = 256

// Engine runs retrieval pipelines over the bean store. All methods are safe
// for concurrent use.
type Engine struct {
	beans      storage.BeanRepository
	chatters   storage.ChatterRepository
	embedder   ai.Embedder
	logger     *slog.Logger
	minScore   float64
	relevance  RelevancePolicy
	projection Projection
	pool       *ants.Pool
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMinScore sets the default similarity floor for vector search.
func WithMinScore(score float64) Option {
	return func(e *Engine) error {
		if err := core.ValidateAccuracy(float32(score)); err != nil {
			return err
		}
		e.minScore = score
		return nil
	}
}

// WithRelevancePolicy sets the minimum-relevance policy for text search.
func WithRelevancePolicy(policy RelevancePolicy) Option {
	return func(e *Engine) error {
		if policy == nil {
			policy = DefaultRelevancePolicy
		}
		e.relevance = policy
		return nil
	}
}

// WithProjection sets the projection applied to every retrieved bean. The
// default returns stored records whole; DigestView trims them for list
// rendering.
func WithProjection(p Projection) Option {
	return func(e *Engine) error {
		e.projection = p
		return nil
	}
}

// WithParallelism sets the worker count of the scoring pool.
func WithParallelism(workers int) Option {
	return func(e *Engine) error {
		if workers < 1 {
			workers = 1
		}
		pool, err := ants.NewPool(workers)
		if err != nil {
			return err
		}
		if e.pool != nil {
			e.pool.Release()
		}
		e.pool = pool
		return nil
	}
}

// NewEngine creates a retrieval engine over the given repositories and AI
// provider.
func NewEngine(
	beans storage.BeanRepository,
	chatters storage.ChatterRepository,
	provider ai.Provider,
	opts ...Option,
) (*Engine, error) {
	if beans == nil {
		return nil, ErrBeanRepositoryRequired
	}
	if chatters == nil {
		return nil, ErrChatterRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return nil, err
	}

	e := &Engine{
		beans:     beans,
		chatters:  chatters,
		embedder:  provider.Embedder(),
		logger:    slog.Default().With("component", "search-engine"),
		minScore:  DefaultMinScore,
		relevance: DefaultRelevancePolicy,
		pool:      pool,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return e, nil
}

// Close releases the scoring pool.
func (e *Engine) Close() error {
	e.pool.Release()
	return nil
}

// validateFilter checks the windows a filter carries.
func validateFilter(f query.Filter) error {
	if f.CreatedInLastDays != 0 {
		if err := core.ValidateWindow(f.CreatedInLastDays); err != nil {
			return err
		}
	}
	if f.UpdatedInLastDays != 0 {
		if err := core.ValidateWindow(f.UpdatedInLastDays); err != nil {
			return err
		}
	}
	return nil
}

// validatePage checks skip and limit. Limit zero means unbounded and is
// allowed only for count queries.
func validatePage(skip, limit int) error {
	if err := core.ValidateSkip(skip); err != nil {
		return err
	}
	return core.ValidateLimit(limit)
}

// emit runs the engine's projection and unwraps the rows.
func (e *Engine) emit(rows []Row) []*core.Bean {
	return beansOf(Apply(rows, Project(e.projection)))
}

// collect scans the store and returns one row per bean matching the filter.
// The update-time index narrows the scan when the filter has an update
// window.
func (e *Engine) collect(ctx context.Context, f query.Filter) ([]Row, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}

	pred := query.Compile(f.Build())
	var rows []Row
	gather := func(b *core.Bean) error {
		if pred(b) {
			rows = append(rows, Row{Bean: b})
		}
		return nil
	}

	var err error
	if f.UpdatedInLastDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -f.UpdatedInLastDays)
		err = e.beans.ScanUpdatedSince(ctx, cutoff, gather)
	} else {
		err = e.beans.ScanBeans(ctx, gather)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// scoreByVector fills each row's score with the cosine similarity between
// the query vector and the bean embedding. Rows without an embedding score
// zero. Large candidate sets are scored on the worker pool.
func (e *Engine) scoreByVector(vector []float32, rows []Row) {
	if len(rows) < scoreChunk*2 {
		scoreSlice(vector, rows)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < len(rows); start += scoreChunk {
		end := start + scoreChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			scoreSlice(vector, chunk)
		}); err != nil {
			// pool rejected the task, score inline
			scoreSlice(vector, chunk)
			wg.Done()
		}
	}
	wg.Wait()
}

func scoreSlice(vector []float32, rows []Row) {
	for i := range rows {
		rows[i].Score = cosineSimilarity(vector, rows[i].Bean.Embedding)
	}
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or empty vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
