package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is generated by content-based hashing of the record's URL.
type ID uint64

// IDFromURL generates a deterministic ID from a URL using BLAKE2b hashing.
// Identical URLs always produce identical IDs.
func IDFromURL(url string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(url))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Kind classifies a bean by the type of content it was crawled from.
type Kind string

const (
	// KindNews is a news article.
	KindNews Kind = "news"
	// KindBlog is a blog article.
	KindBlog Kind = "blog"
	// KindPost is a social media post.
	KindPost Kind = "post"
	// KindGenerated is content composed by a downstream summarizer.
	KindGenerated Kind = "generated"
)

// Bean represents one crawled content item: a news article, blog post or
// social media post. Beans are written by an external ingestion pipeline and
// only read (plus age-based deletion) by this module. ClusterID and TrendScore
// are assigned by external processes and consumed here as-is.
type Bean struct {
	URL        string // globally unique, immutable once stored
	Title      string
	Kind       Kind
	Source     string   // publisher id
	SharedIn   []string // channels the content was redistributed through
	Author     string
	Created    time.Time // original publication time
	Updated    time.Time // last time an external process touched the record
	Summary    string
	Gist       string
	Content    string
	IsScraped  bool // true while the full content has not been scraped yet
	Tags       []string
	Categories []string
	Entities   []string
	Regions    []string
	Embedding  []float32 // fixed-length vector, empty until backfilled
	ClusterID  string    // groups near-duplicate beans covering the same story
	TrendScore float64
	Likes      int
	Comments   int
	Shares     int
}

// Digest returns the text used when an embedding has to be computed for the
// bean: the title plus whichever derived text is available.
func (b *Bean) Digest() string {
	if b.Gist != "" {
		return b.Title + "\n" + b.Gist
	}
	if b.Summary != "" {
		return b.Title + "\n" + b.Summary
	}
	return b.Title
}

// HasContent reports whether the bean is fully processed: content is present
// and the scrape flag has been cleared.
func (b *Bean) HasContent() bool {
	return b.Content != "" && !b.IsScraped
}

// Chatter is an externally collected social-engagement snapshot for a bean.
// Multiple snapshots may exist per bean, one per (URL, ContainerURL) medium.
type Chatter struct {
	URL          string
	ContainerURL string // the thread/post the bean was discussed in
	Source       string
	Channel      string
	Updated      time.Time
	Likes        int
	Comments     int
	Shares       int
}

// TagCount is a tag-frequency record produced by tag aggregation queries.
type TagCount struct {
	Tag   string
	Count int
}

// ClusterSize reports how many beans share a cluster with the given URL.
type ClusterSize struct {
	ClusterID string
	URL       string
	Size      int
}
