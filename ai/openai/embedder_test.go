package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/cafecito/beansack/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedQueryCancelledContext(t *testing.T) {
	// port 1 is never dialed: the cancelled context fails the request first
	cfg := ai.NewConfig(ai.WithHost("http://127.0.0.1:1"))
	embedder, err := newEmbedder(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = embedder.EmbedQuery(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ai.ErrEmbeddingTimeout), "cancelled call reports a timeout: %v", err)
	assert.False(t, errors.Is(err, ai.ErrEmbedderUnavailable), "a timeout is not a missing backend")
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "a b", truncateWords("a b c d", 2))
	assert.Equal(t, "a b", truncateWords("a b", 5))
	assert.Equal(t, "", truncateWords("", 3))
}
