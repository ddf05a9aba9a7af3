package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cafecito/beansack/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder over an OpenAI-compatible embedding API.
//
// The underlying client is created lazily on first use. Construction of an
// Embedder therefore never touches the network, which lets a sack start up
// with the embedding service still down; only vector searches fail until it
// comes back.
type Embedder struct {
	config *ai.Config
	logger *slog.Logger

	mu       sync.Mutex
	embedder embeddings.Embedder
}

// newEmbedder validates the config and returns the concrete type. The
// Provider keeps the concrete handle.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Embedder{
		config: config,
		logger: slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates an embedder from the configuration.
//
// Returns ai.Embedder to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// client returns the shared langchaingo embedder, building it on first call.
func (e *Embedder) client() (embeddings.Embedder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.embedder != nil {
		return e.embedder, nil
	}

	llm, err := openai.New(
		openai.WithBaseURL(e.config.EmbeddingHost),
		openai.WithToken(e.config.APIKey),
		openai.WithEmbeddingModel(e.config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrEmbedderUnavailable, err)
	}

	embedder, err := embeddings.NewEmbedder(llm, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrEmbedderUnavailable, err)
	}

	e.embedder = embedder
	return embedder, nil
}

// EmbedQuery generates an embedding for a single search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedTexts generates embeddings for a batch of documents in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return e.embed(ctx, texts)
}

func (e *Embedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	client, err := e.client()
	if err != nil {
		return nil, err
	}

	prepped := make([]string, len(texts))
	for i, t := range texts {
		prepped[i] = truncateWords(t, e.config.ContextWords)
	}

	var vecs [][]float32
	for attempt := 1; ; attempt++ {
		vecs, err = client.EmbedDocuments(ctx, prepped)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			e.logger.Error("embedding timed out", "count", len(texts), "attempts", attempt, "err", err)
			return nil, fmt.Errorf("%w: %v", ai.ErrEmbeddingTimeout, err)
		}
		if attempt >= e.config.Attempts {
			e.logger.Error("embedding failed", "count", len(texts), "attempts", attempt, "err", err)
			return nil, fmt.Errorf("%w: %v", ai.ErrEmbedderUnavailable, err)
		}
		e.logger.Warn("embedding attempt failed, retrying", "attempt", attempt, "err", err)
	}

	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ai.ErrEmbeddingFailed, len(vecs), len(texts))
	}
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty vector at index %d", ai.ErrEmbeddingFailed, i)
		}
	}
	return vecs, nil
}

// truncateWords caps text at n whitespace-separated words.
func truncateWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) <= n {
		return text
	}
	return strings.Join(fields[:n], " ")
}
