package search

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
	"github.com/cafecito/beansack/storage"
)

// TrendingTags aggregates tag frequencies over the filtered beans, most
// frequent first with an alphabetical tie-break. Skip and limit page through
// the ranking.
func (e *Engine) TrendingTags(ctx context.Context, f query.Filter, skip, limit int) ([]core.TagCount, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := e.collect(ctx, f)
	if err != nil {
		return nil, err
	}
	return rankTags(rows, skip, limit), nil
}

// SearchTags aggregates tag frequencies over the beans matching the query
// text, so callers can surface the topics of a search result set.
func (e *Engine) SearchTags(ctx context.Context, queryText string, f query.Filter, skip, limit int) ([]core.TagCount, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := e.textRows(ctx, queryText, f)
	if err != nil {
		return nil, err
	}
	return rankTags(rows, skip, limit), nil
}

// rankTags unwinds tags, counts them case-insensitively and pages through
// the ranking. The first-seen casing of each tag is the one reported.
func rankTags(rows []Row, skip, limit int) []core.TagCount {
	counts := make(map[string]int)
	casing := make(map[string]string)

	for _, row := range rows {
		for _, tag := range row.Bean.Tags {
			key := strings.ToLower(tag)
			if key == "" {
				continue
			}
			if _, ok := casing[key]; !ok {
				casing[key] = tag
			}
			counts[key]++
		}
	}

	ranked := make([]core.TagCount, 0, len(counts))
	for key, n := range counts {
		ranked = append(ranked, core.TagCount{Tag: casing[key], Count: n})
	}
	slices.SortFunc(ranked, func(a, b core.TagCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(strings.ToLower(a.Tag), strings.ToLower(b.Tag))
	})

	if skip >= len(ranked) {
		return nil
	}
	ranked = ranked[skip:]
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ChatterStats returns the latest engagement snapshot per (url, container)
// medium for each given URL. A bean discussed in three threads yields three
// snapshots.
func (e *Engine) ChatterStats(ctx context.Context, urls ...string) ([]*core.Chatter, error) {
	var results []*core.Chatter

	for _, url := range urls {
		snapshots, err := e.chatters.GetChatters(ctx, url)
		if err != nil {
			return nil, err
		}

		latest := make(map[string]*core.Chatter)
		for _, snap := range snapshots {
			prev, ok := latest[snap.ContainerURL]
			if !ok || snap.Updated.After(prev.Updated) {
				latest[snap.ContainerURL] = snap
			}
		}

		containers := make([]string, 0, len(latest))
		for c := range latest {
			containers = append(containers, c)
		}
		slices.Sort(containers)
		for _, c := range containers {
			results = append(results, latest[c])
		}
	}
	return results, nil
}

// ConsolidatedChatterStats sums the latest per-medium snapshots into one
// engagement total per URL, in input order.
func (e *Engine) ConsolidatedChatterStats(ctx context.Context, urls ...string) ([]*core.Chatter, error) {
	var results []*core.Chatter

	for _, url := range urls {
		latest, err := e.ChatterStats(ctx, url)
		if err != nil {
			return nil, err
		}
		if len(latest) == 0 {
			continue
		}

		total := &core.Chatter{URL: url}
		for _, snap := range latest {
			total.Likes += snap.Likes
			total.Comments += snap.Comments
			total.Shares += snap.Shares
			if snap.Updated.After(total.Updated) {
				total.Updated = snap.Updated
				total.Source = snap.Source
				total.Channel = snap.Channel
			}
		}
		results = append(results, total)
	}
	return results, nil
}

// CountRelatedBeans reports the cluster size for each given URL in input
// order: how many stored beans, the bean itself included, cover the same
// story. Unknown URLs are skipped; a bean outside any cluster has size one.
func (e *Engine) CountRelatedBeans(ctx context.Context, urls ...string) ([]core.ClusterSize, error) {
	sizes := make(map[string]int)
	var results []core.ClusterSize

	for _, url := range urls {
		bean, err := e.beans.GetBean(ctx, core.IDFromURL(url))
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if bean.ClusterID == "" {
			results = append(results, core.ClusterSize{URL: url, Size: 1})
			continue
		}

		size, ok := sizes[bean.ClusterID]
		if !ok {
			err = e.beans.ScanCluster(ctx, bean.ClusterID, func(*core.Bean) error {
				size++
				return nil
			})
			if err != nil {
				return nil, err
			}
			sizes[bean.ClusterID] = size
		}

		results = append(results, core.ClusterSize{
			ClusterID: bean.ClusterID,
			URL:       url,
			Size:      size,
		})
	}
	return results, nil
}
