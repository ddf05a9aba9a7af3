package ai

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.EmbeddingHost == "" || cfg.EmbeddingModel == "" {
		t.Fatalf("defaults incomplete: %+v", cfg)
	}
	if cfg.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", cfg.Attempts)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://embed.internal:8080"),
		WithModel("text-embedding-3-small"),
		WithAPIKey("sk-test"),
		WithContextWords(512),
		WithAttempts(1),
		WithCacheTTL(0),
	)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if cfg.EmbeddingHost != "http://embed.internal:8080/v1" {
		t.Errorf("host not normalized: %q", cfg.EmbeddingHost)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1"},
	}
	for _, tt := range tests {
		cfg := NewConfig(WithHost(tt.host))
		cfg.Normalize()
		if cfg.EmbeddingHost != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.host, cfg.EmbeddingHost, tt.want)
		}
	}

	cfg := NewConfig()
	cfg.Normalize()
	if cfg.APIKey != "none" {
		t.Errorf("empty APIKey should normalize to none, got %q", cfg.APIKey)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	bad := []*Config{
		{EmbeddingModel: "m", ContextWords: 10, Attempts: 1},
		{EmbeddingHost: "http://h", ContextWords: 10, Attempts: 1},
		{EmbeddingHost: "http://h", EmbeddingModel: "m", Attempts: 1},
		{EmbeddingHost: "http://h", EmbeddingModel: "m", ContextWords: 10},
		{EmbeddingHost: "http://h", EmbeddingModel: "m", ContextWords: 10, Attempts: 1, CacheTTL: -time.Second},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: Validate() = nil, want error", i)
		}
	}
}
