package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/storage"
)

func TestStoreAndGetBean(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()

	bean := &core.Bean{
		URL:     "https://example.com/a",
		Title:   "First",
		Kind:    core.KindNews,
		Source:  "example",
		Created: time.Now().UTC().Add(-time.Hour),
	}

	stored, err := beanRepo.StoreBeans(ctx, bean)
	if err != nil {
		t.Fatalf("Failed to store bean: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored bean, got %d", len(stored))
	}
	if stored[0].Updated.IsZero() {
		t.Fatal("Expected Updated to be stamped")
	}

	retrieved, err := beanRepo.GetBean(ctx, core.IDFromURL(bean.URL))
	if err != nil {
		t.Fatalf("Failed to get bean: %v", err)
	}
	if retrieved.Title != "First" {
		t.Fatalf("Expected 'First', got %q", retrieved.Title)
	}

	_, err = beanRepo.GetBean(ctx, core.IDFromURL("https://example.com/missing"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreBeansSkipsExisting(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)

	first := &core.Bean{URL: "https://example.com/a", Title: "Original", Created: created, ClusterID: "c1"}
	if _, err := beanRepo.StoreBeans(ctx, first); err != nil {
		t.Fatal(err)
	}

	// same URL again with different content must be ignored
	dup := &core.Bean{URL: "https://example.com/a", Title: "Replacement", Created: created}
	fresh := &core.Bean{URL: "https://example.com/b", Title: "New", Created: created}

	stored, err := beanRepo.StoreBeans(ctx, dup, fresh)
	if err != nil {
		t.Fatalf("Failed to store beans: %v", err)
	}
	if len(stored) != 1 || stored[0].URL != "https://example.com/b" {
		t.Fatalf("Expected only the new bean to be stored, got %v", stored)
	}

	kept, err := beanRepo.GetBean(ctx, core.IDFromURL("https://example.com/a"))
	if err != nil {
		t.Fatal(err)
	}
	if kept.Title != "Original" || kept.ClusterID != "c1" {
		t.Fatalf("Existing bean was clobbered: %+v", kept)
	}
}

func TestUpdateEmbedding(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	bean := &core.Bean{URL: "https://example.com/a", Created: time.Now().UTC().Add(-time.Hour)}
	if _, err := beanRepo.StoreBeans(ctx, bean); err != nil {
		t.Fatal(err)
	}

	id := core.IDFromURL(bean.URL)
	vector := []float32{0.5, -0.5, 0.25}
	if err := beanRepo.UpdateEmbedding(ctx, id, vector); err != nil {
		t.Fatalf("Failed to update embedding: %v", err)
	}

	got, err := beanRepo.GetBean(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Embedding) != 3 || got.Embedding[0] != 0.5 {
		t.Fatalf("Embedding not persisted: %v", got.Embedding)
	}

	err = beanRepo.UpdateEmbedding(ctx, core.IDFromURL("https://missing"), vector)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestScanBeans(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)
	for _, url := range []string{"https://a", "https://b", "https://c"} {
		if _, err := beanRepo.StoreBeans(ctx, &core.Bean{URL: url, Created: created, ClusterID: "x"}); err != nil {
			t.Fatal(err)
		}
	}

	var seen int
	err = beanRepo.ScanBeans(ctx, func(b *core.Bean) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if seen != 3 {
		t.Fatalf("Expected 3 beans, got %d", seen)
	}

	// early stop via sentinel
	seen = 0
	err = beanRepo.ScanBeans(ctx, func(b *core.Bean) error {
		seen++
		return storage.ErrStopScan
	})
	if err != nil {
		t.Fatalf("Scan with early stop failed: %v", err)
	}
	if seen != 1 {
		t.Fatalf("Expected scan to stop after 1 bean, got %d", seen)
	}
}

func TestScanCluster(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)
	beans := []*core.Bean{
		{URL: "https://a", Created: created, ClusterID: "story-1"},
		{URL: "https://b", Created: created, ClusterID: "story-1"},
		{URL: "https://c", Created: created, ClusterID: "story-2"},
		{URL: "https://d", Created: created},
	}
	if _, err := beanRepo.StoreBeans(ctx, beans...); err != nil {
		t.Fatal(err)
	}

	var urls []string
	err = beanRepo.ScanCluster(ctx, "story-1", func(b *core.Bean) error {
		urls = append(urls, b.URL)
		return nil
	})
	if err != nil {
		t.Fatalf("Cluster scan failed: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("Expected 2 beans in story-1, got %v", urls)
	}
}

func TestScanUpdatedSince(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)
	if _, err := beanRepo.StoreBeans(ctx, &core.Bean{URL: "https://a", Created: created}); err != nil {
		t.Fatal(err)
	}

	var seen int
	err = beanRepo.ScanUpdatedSince(ctx, time.Now().UTC().Add(-time.Minute), func(b *core.Bean) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen != 1 {
		t.Fatalf("Expected 1 bean in window, got %d", seen)
	}

	seen = 0
	err = beanRepo.ScanUpdatedSince(ctx, time.Now().UTC().Add(time.Minute), func(b *core.Bean) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen != 0 {
		t.Fatalf("Expected no beans past a future cutoff, got %d", seen)
	}
}

func TestDeleteOld(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)
	beans := []*core.Bean{
		{URL: "https://a", Created: created, ClusterID: "x"},
		{URL: "https://b", Created: created},
	}
	if _, err := beanRepo.StoreBeans(ctx, beans...); err != nil {
		t.Fatal(err)
	}

	// cutoff in the past removes nothing
	deleted, err := beanRepo.DeleteOld(ctx, time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Fatalf("Expected 0 deleted, got %d", deleted)
	}

	// cutoff in the future removes everything stored just now
	deleted, err = beanRepo.DeleteOld(ctx, time.Now().UTC().Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Fatalf("Expected 2 deleted, got %d", deleted)
	}

	_, err = beanRepo.GetBean(ctx, core.IDFromURL("https://a"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	var seen int
	if err := beanRepo.ScanCluster(ctx, "x", func(b *core.Bean) error { seen++; return nil }); err != nil {
		t.Fatal(err)
	}
	if seen != 0 {
		t.Fatal("Cluster index entry survived the delete")
	}
}
