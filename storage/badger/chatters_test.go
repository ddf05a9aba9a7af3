package badger

import (
	"context"
	"testing"
	"time"

	"github.com/cafecito/beansack/core"
)

func TestAddAndGetChatters(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	chatters := []*core.Chatter{
		{URL: "https://example.com/a", ContainerURL: "https://reddit.com/1", Source: "reddit", Updated: now.Add(-time.Hour), Likes: 5},
		{URL: "https://example.com/a", ContainerURL: "https://reddit.com/1", Source: "reddit", Updated: now, Likes: 9},
		{URL: "https://example.com/b", ContainerURL: "https://news.ycombinator.com/2", Source: "hackernews", Updated: now, Comments: 3},
	}
	if err := chatterRepo.AddChatters(ctx, chatters...); err != nil {
		t.Fatalf("Failed to add chatters: %v", err)
	}

	got, err := chatterRepo.GetChatters(ctx, "https://example.com/a")
	if err != nil {
		t.Fatalf("Failed to get chatters: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(got))
	}

	got, err = chatterRepo.GetChatters(ctx, "https://example.com/missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("Expected no snapshots, got %d", len(got))
	}
}

func TestAddChatterRequiresURL(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	err = chatterRepo.AddChatters(context.Background(), &core.Chatter{Source: "reddit"})
	if err == nil {
		t.Fatal("Expected error for chatter without URL")
	}
}

func TestScanChatters(t *testing.T) {
	beanRepo, chatterRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chatterRepo.Close(); beanRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()
	for i, url := range []string{"https://a", "https://b", "https://c"} {
		if err := chatterRepo.AddChatters(ctx, &core.Chatter{URL: url, Updated: now, Likes: i}); err != nil {
			t.Fatal(err)
		}
	}

	var seen int
	err = chatterRepo.ScanChatters(ctx, func(c *core.Chatter) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if seen != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", seen)
	}

	// a missing Updated stamp is defaulted at add time
	if err := chatterRepo.AddChatters(ctx, &core.Chatter{URL: "https://d"}); err != nil {
		t.Fatal(err)
	}
	found := false
	err = chatterRepo.ScanChatters(ctx, func(c *core.Chatter) error {
		if c.URL == "https://d" {
			found = true
			if c.Updated.IsZero() {
				t.Error("Updated should have been stamped")
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("Snapshot for https://d not found")
	}
}
