package ai

import "errors"

var (
	// ErrEmbedderUnavailable indicates the embedding service could not be
	// reached or initialized.
	ErrEmbedderUnavailable = errors.New("embedder unavailable")

	// ErrEmbeddingTimeout indicates the caller's deadline expired or the
	// context was cancelled mid-call. Transient; retryable by the caller.
	ErrEmbeddingTimeout = errors.New("embedding timed out")

	// ErrEmbeddingFailed indicates the service responded but produced no
	// usable vector.
	ErrEmbeddingFailed = errors.New("embedding failed")
)
