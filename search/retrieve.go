package search

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
	"github.com/cafecito/beansack/storage"
)

// GetBeans retrieves beans matching the filter in the given order, with skip
// and limit applied after sorting.
func (e *Engine) GetBeans(ctx context.Context, f query.Filter, order query.SortOrder, skip, limit int) ([]*core.Bean, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := e.collect(ctx, f)
	if err != nil {
		return nil, err
	}

	rows = Apply(rows,
		SortBy(order),
		Paginate(skip, limit),
	)
	return e.emit(rows), nil
}

// CountBeans counts beans matching the filter, capped at limit. A limit of
// zero or less leaves the count uncapped.
func (e *Engine) CountBeans(ctx context.Context, f query.Filter, limit int) (int, error) {
	rows, err := e.collect(ctx, f)
	if err != nil {
		return 0, err
	}
	return capCount(len(rows), limit), nil
}

// UniqueBeans retrieves filtered beans with each story cluster collapsed to
// its best representative under the sort order, then at most maxPerSource
// beans per publisher (zero disables the source cap). The order is applied
// before grouping to pick representatives and again after, so pagination
// windows stay stable.
func (e *Engine) UniqueBeans(ctx context.Context, f query.Filter, order query.SortOrder, maxPerSource, skip, limit int) ([]*core.Bean, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := e.collect(ctx, f)
	if err != nil {
		return nil, err
	}

	rows = Apply(rows,
		SortBy(order),
		GroupByCluster(),
		GroupBySource(maxPerSource),
		SortBy(order),
		Paginate(skip, limit),
	)
	return e.emit(rows), nil
}

// CountUniqueBeans counts distinct story clusters among the filtered beans,
// capped at limit.
func (e *Engine) CountUniqueBeans(ctx context.Context, f query.Filter, limit int) (int, error) {
	rows, err := e.collect(ctx, f)
	if err != nil {
		return 0, err
	}
	rows = Apply(rows, GroupByCluster())
	return capCount(len(rows), limit), nil
}

// RelatedBeans samples other members of the seed bean's story cluster,
// newest first. A missing seed or a seed without a cluster yields an empty
// result, not an error.
func (e *Engine) RelatedBeans(ctx context.Context, seedURL string, f query.Filter, limit int) ([]*core.Bean, error) {
	if err := core.ValidateLimit(limit); err != nil {
		return nil, err
	}

	seed, err := e.beans.GetBean(ctx, core.IDFromURL(seedURL))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if seed.ClusterID == "" {
		return nil, nil
	}

	f.ClusterID = seed.ClusterID
	f.ExcludeURL = seedURL
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	pred := query.Compile(f.Build())

	var rows []Row
	err = e.beans.ScanCluster(ctx, seed.ClusterID, func(b *core.Bean) error {
		if pred(b) {
			rows = append(rows, Row{Bean: b})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// sample before sorting so a large cluster yields a varied selection
	if len(rows) > limit {
		rand.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		rows = rows[:limit]
	}

	rows = Apply(rows, SortBy(query.Newest))
	return e.emit(rows), nil
}
