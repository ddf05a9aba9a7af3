package search

import (
	"context"
	"testing"
	"time"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendingTags(t *testing.T) {
	engine, beanRepo, _ := newTestEngine(t)
	ctx := context.Background()

	beans := []*core.Bean{
		{URL: "https://a", Kind: core.KindNews, Tags: []string{"AI", "chips"}, Created: daysAgo(1)},
		{URL: "https://b", Kind: core.KindNews, Tags: []string{"ai", "economy"}, Created: daysAgo(2)},
		{URL: "https://c", Kind: core.KindNews, Tags: []string{"ai"}, Created: daysAgo(3)},
		{URL: "https://d", Kind: core.KindBlog, Tags: []string{"chips"}, Created: daysAgo(1)},
	}
	_, err := beanRepo.StoreBeans(ctx, beans...)
	require.NoError(t, err)

	tags, err := engine.TrendingTags(ctx, query.Filter{Kinds: []string{"news"}}, 0, 10)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "AI", tags[0].Tag, "counted case-insensitively, first-seen casing kept")
	assert.Equal(t, 3, tags[0].Count)
	assert.Equal(t, "chips", tags[1].Tag)
	assert.Equal(t, 1, tags[1].Count)

	// pagination over the ranking
	page, err := engine.TrendingTags(ctx, query.Filter{Kinds: []string{"news"}}, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "chips", page[0].Tag)
}

func TestSearchTags(t *testing.T) {
	engine, beanRepo, _ := newTestEngine(t)
	ctx := context.Background()

	beans := []*core.Bean{
		{URL: "https://a", Title: "solar expansion", Tags: []string{"energy"}, Created: daysAgo(1)},
		{URL: "https://b", Title: "rate hike", Tags: []string{"finance"}, Created: daysAgo(1)},
	}
	_, err := beanRepo.StoreBeans(ctx, beans...)
	require.NoError(t, err)

	tags, err := engine.SearchTags(ctx, "solar", query.Filter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "energy", tags[0].Tag)
}

func TestCountRelatedBeans(t *testing.T) {
	engine, beanRepo, _ := newTestEngine(t)
	ctx := context.Background()

	beans := []*core.Bean{
		{URL: "https://a", ClusterID: "story-x", Created: daysAgo(1)},
		{URL: "https://b", ClusterID: "story-x", Created: daysAgo(2)},
		{URL: "https://c", ClusterID: "story-x", Created: daysAgo(3)},
		{URL: "https://d", Created: daysAgo(1)},
	}
	_, err := beanRepo.StoreBeans(ctx, beans...)
	require.NoError(t, err)

	sizes, err := engine.CountRelatedBeans(ctx, "https://a", "https://d", "https://missing", "https://b")
	require.NoError(t, err)
	require.Len(t, sizes, 3, "unknown URLs are skipped")

	assert.Equal(t, core.ClusterSize{ClusterID: "story-x", URL: "https://a", Size: 3}, sizes[0])
	assert.Equal(t, core.ClusterSize{URL: "https://d", Size: 1}, sizes[1], "clusterless bean counts itself")
	assert.Equal(t, core.ClusterSize{ClusterID: "story-x", URL: "https://b", Size: 3}, sizes[2])
}

func TestChatterStats(t *testing.T) {
	engine, _, chatterRepo := newTestEngine(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	snapshots := []*core.Chatter{
		{URL: "https://a", ContainerURL: "https://reddit.com/1", Source: "reddit", Updated: now.Add(-2 * time.Hour), Likes: 5, Comments: 1},
		{URL: "https://a", ContainerURL: "https://reddit.com/1", Source: "reddit", Updated: now, Likes: 9, Comments: 2},
		{URL: "https://a", ContainerURL: "https://news.ycombinator.com/2", Source: "hackernews", Updated: now.Add(-time.Hour), Likes: 3, Shares: 1},
	}
	require.NoError(t, chatterRepo.AddChatters(ctx, snapshots...))

	stats, err := engine.ChatterStats(ctx, "https://a")
	require.NoError(t, err)
	require.Len(t, stats, 2, "one latest snapshot per medium")

	var reddit *core.Chatter
	for _, s := range stats {
		if s.Source == "reddit" {
			reddit = s
		}
	}
	require.NotNil(t, reddit)
	assert.Equal(t, 9, reddit.Likes, "superseded snapshot ignored")

	total, err := engine.ConsolidatedChatterStats(ctx, "https://a", "https://quiet")
	require.NoError(t, err)
	require.Len(t, total, 1, "URLs without chatter are omitted")
	assert.Equal(t, 12, total[0].Likes)
	assert.Equal(t, 2, total[0].Comments)
	assert.Equal(t, 1, total[0].Shares)
	assert.True(t, total[0].Updated.Equal(now))
}
