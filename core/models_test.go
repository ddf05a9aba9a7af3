package core

import (
	"testing"
	"time"
)

func TestIDFromURL(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromURL("https://example.com/story")
		id2 := IDFromURL("https://example.com/story")
		if id1 != id2 {
			t.Errorf("same URL produced different IDs: %d != %d", id1, id2)
		}
	})

	t.Run("distinct URLs produce distinct IDs", func(t *testing.T) {
		id1 := IDFromURL("https://example.com/a")
		id2 := IDFromURL("https://example.com/b")
		if id1 == id2 {
			t.Errorf("different URLs produced the same ID: %d", id1)
		}
	})

	t.Run("empty URL is still hashable", func(t *testing.T) {
		_ = IDFromURL("")
	})
}

func TestBeanDigest(t *testing.T) {
	tests := []struct {
		name string
		bean Bean
		want string
	}{
		{
			name: "gist preferred",
			bean: Bean{Title: "t", Gist: "g", Summary: "s"},
			want: "t\ng",
		},
		{
			name: "summary fallback",
			bean: Bean{Title: "t", Summary: "s"},
			want: "t\ns",
		},
		{
			name: "title only",
			bean: Bean{Title: "t"},
			want: "t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bean.Digest(); got != tt.want {
				t.Errorf("Digest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBeanHasContent(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		bean Bean
		want bool
	}{
		{name: "content present and scraped flag cleared", bean: Bean{URL: "u", Content: "body", Created: now}, want: true},
		{name: "content present but scrape pending", bean: Bean{URL: "u", Content: "body", IsScraped: true, Created: now}, want: false},
		{name: "no content", bean: Bean{URL: "u", Created: now}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bean.HasContent(); got != tt.want {
				t.Errorf("HasContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBeanRoundTrip(t *testing.T) {
	created := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	bean := Bean{
		URL:        "https://example.com/story",
		Title:      "A story",
		Kind:       KindNews,
		Source:     "example",
		SharedIn:   []string{"hackernews"},
		Author:     "jane",
		Created:    created,
		Updated:    created.Add(time.Hour),
		Summary:    "summary",
		Gist:       "gist",
		Content:    "full text",
		Tags:       []string{"ai", "chips"},
		Categories: []string{"technology"},
		Entities:   []string{"acme corp"},
		Regions:    []string{"us"},
		Embedding:  []float32{0.1, 0.2, 0.3},
		ClusterID:  "cluster-1",
		TrendScore: 42.5,
		Likes:      10,
		Comments:   3,
		Shares:     1,
	}

	buf := make([]byte, BeanMUS.Size(bean))
	n := BeanMUS.Marshal(bean, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(buf))
	}

	got, n, err := BeanMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal consumed %d bytes, expected %d", n, len(buf))
	}
	if got.URL != bean.URL || got.Kind != bean.Kind || got.ClusterID != bean.ClusterID {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if !got.Created.Equal(bean.Created) || !got.Updated.Equal(bean.Updated) {
		t.Errorf("timestamp round trip mismatch: got %v/%v", got.Created, got.Updated)
	}
	if len(got.Embedding) != len(bean.Embedding) || got.Embedding[2] != bean.Embedding[2] {
		t.Errorf("embedding round trip mismatch: got %v", got.Embedding)
	}
	if got.TrendScore != bean.TrendScore || got.Likes != bean.Likes {
		t.Errorf("score round trip mismatch: got %+v", got)
	}
}

func TestChatterRoundTrip(t *testing.T) {
	chatter := Chatter{
		URL:          "https://example.com/story",
		ContainerURL: "https://news.ycombinator.com/item?id=1",
		Source:       "ycombinator",
		Channel:      "hackernews",
		Updated:      time.Date(2025, 8, 2, 9, 30, 0, 0, time.UTC),
		Likes:        120,
		Comments:     45,
		Shares:       7,
	}

	buf := make([]byte, ChatterMUS.Size(chatter))
	ChatterMUS.Marshal(chatter, buf)

	got, _, err := ChatterMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got != (Chatter{
		URL:          chatter.URL,
		ContainerURL: chatter.ContainerURL,
		Source:       chatter.Source,
		Channel:      chatter.Channel,
		Updated:      got.Updated,
		Likes:        chatter.Likes,
		Comments:     chatter.Comments,
		Shares:       chatter.Shares,
	}) || !got.Updated.Equal(chatter.Updated) {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}
