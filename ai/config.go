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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the embedding provider.
type Config struct {
	// EmbeddingHost is the base URL of an OpenAI-compatible embedding API.
	// Example: "http://localhost:11434/v1" for a local server.
	EmbeddingHost string

	// EmbeddingModel is the model identifier for text embeddings.
	// Example: "nomic-embed-text", "text-embedding-3-small"
	EmbeddingModel string

	// APIKey authenticates against hosted services. Local OpenAI-compatible
	// servers usually ignore it; "none" is sent when empty.
	APIKey string

	// ContextWords caps the word count of any text sent to the embedder.
	// Longer inputs are truncated. Default: 4096.
	ContextWords int

	// Attempts is how many times an embedding call is retried before the
	// error is surfaced. Default: 3.
	Attempts int

	// CacheTTL bounds how long a query embedding stays in the in-process
	// cache. Zero disables caching. Default: 30 minutes.
	CacheTTL time.Duration
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithHost sets the embedding service host URL.
func WithHost(host string) Option {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) Option {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the API key for hosted embedding services.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithContextWords sets the truncation limit for embedder inputs.
func WithContextWords(words int) Option {
	return func(c *Config) {
		c.ContextWords = words
	}
}

// WithAttempts sets the retry budget for embedding calls.
func WithAttempts(n int) Option {
	return func(c *Config) {
		c.Attempts = n
	}
}

// WithCacheTTL sets the lifetime of cached query embeddings.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.CacheTTL = ttl
	}
}

// DefaultConfig returns a Config with defaults for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "nomic-embed-text",
		ContextWords:   4096,
		Attempts:       3,
		CacheTTL:       30 * time.Minute,
	}
}

// NewConfig creates a Config with defaults and applies the options.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form. Hosts get the /v1
// suffix most OpenAI-compatible servers (Ollama, LocalAI, vLLM) require.
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.APIKey == "" {
		c.APIKey = "none"
	}
}

// Validate checks that the configuration is complete. It normalizes first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ContextWords < 1 {
		return errors.New("ai config: ContextWords must be positive")
	}
	if c.Attempts < 1 {
		return errors.New("ai config: Attempts must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.New("ai config: CacheTTL must not be negative")
	}
	return nil
}
