package mock

import (
	"context"
	"sync"
	"testing"
)

func TestEmbedderDeterminism(t *testing.T) {
	ctx := context.Background()
	m := NewEmbedder()

	a, err := m.EmbedQuery(ctx, "solar power breakthrough")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.EmbedQuery(ctx, "solar power breakthrough")
	if err != nil {
		t.Fatal(err)
	}
	c, err := m.EmbedQuery(ctx, "completely different topic")
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 384 {
		t.Errorf("dimension = %d, want 384", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same text must produce the same vector")
		}
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts should produce different vectors")
	}
}

func TestEmbedderBatchOrder(t *testing.T) {
	ctx := context.Background()
	m := NewEmbedder()

	single, _ := m.EmbedQuery(ctx, "beta")
	batch, err := m.EmbedTexts(ctx, []string{"alpha", "beta"})
	if err != nil {
		t.Fatal(err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch size = %d", len(batch))
	}
	for i := range single {
		if batch[1][i] != single[i] {
			t.Fatal("batch vectors must match per-text vectors")
		}
	}
	if m.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", m.CallCount())
	}
}

func TestEmbedderConcurrentCallCount(t *testing.T) {
	ctx := context.Background()
	m := NewEmbedder()

	const calls = 50
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.EmbedQuery(ctx, "concurrent"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if m.CallCount() != calls {
		t.Errorf("CallCount() = %d, want %d", m.CallCount(), calls)
	}
}

func TestEmbedderInjection(t *testing.T) {
	m := NewEmbedder()
	m.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{42}, nil
	}

	vec, err := m.EmbedQuery(context.Background(), "anything")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 1 || vec[0] != 42 {
		t.Errorf("injected func not used: %v", vec)
	}

	m.Reset()
	if m.CallCount() != 0 || m.EmbedQueryFunc != nil {
		t.Error("Reset() should clear state")
	}
}
