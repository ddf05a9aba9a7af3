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


package search

import (
	"slices"
	"strings"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
)

// Row is one scored candidate flowing through a retrieval pipeline. Score is
// zero for pipelines that never score (plain filtered retrieval).
type Row struct {
	Bean  *core.Bean
	Score float64
}

// Stage transforms a row slice. Pipelines are built by chaining stages, so
// each retrieval mode is an explicit, testable sequence instead of an opaque
// query document.
type Stage func([]Row) []Row

// Apply runs the stages over rows in order.
func Apply(rows []Row, stages ...Stage) []Row {
	for _, stage := range stages {
		rows = stage(rows)
	}
	return rows
}

// Match keeps rows whose bean satisfies the predicate.
func Match(pred query.Predicate) Stage {
	if pred == nil {
		return func(rows []Row) []Row { return rows }
	}
	return func(rows []Row) []Row {
		kept := rows[:0]
		for _, row := range rows {
			if pred(row.Bean) {
				kept = append(kept, row)
			}
		}
		return kept
	}
}

// Threshold drops rows scoring below min.
func Threshold(min float64) Stage {
	return func(rows []Row) []Row {
		kept := rows[:0]
		for _, row := range rows {
			if row.Score >= min {
				kept = append(kept, row)
			}
		}
		return kept
	}
}

// SortBy orders rows by the sort policy.
func SortBy(order query.SortOrder) Stage {
	return func(rows []Row) []Row {
		slices.SortStableFunc(rows, func(a, b Row) int {
			return order.Compare(a.Bean, b.Bean)
		})
		return rows
	}
}

// SortByScore orders rows by score descending with a URL tie-break, so
// score-ranked results are deterministic too.
func SortByScore() Stage {
	return func(rows []Row) []Row {
		slices.SortStableFunc(rows, func(a, b Row) int {
			if a.Score > b.Score {
				return -1
			}
			if a.Score < b.Score {
				return 1
			}
			return strings.Compare(a.Bean.URL, b.Bean.URL)
		})
		return rows
	}
}

// GroupByCluster collapses each story cluster to its first row in current
// order. Rows without a cluster pass through as singleton groups. Sort
// before grouping to choose the representative, and again after if a
// different final order is wanted.
func GroupByCluster() Stage {
	return func(rows []Row) []Row {
		seen := make(map[string]bool, len(rows))
		kept := rows[:0]
		for _, row := range rows {
			if row.Bean.ClusterID == "" {
				kept = append(kept, row)
				continue
			}
			if seen[row.Bean.ClusterID] {
				continue
			}
			seen[row.Bean.ClusterID] = true
			kept = append(kept, row)
		}
		return kept
	}
}

// GroupBySource keeps at most keep rows per source in current order. A keep
// of zero or less disables the stage.
func GroupBySource(keep int) Stage {
	if keep <= 0 {
		return func(rows []Row) []Row { return rows }
	}
	return func(rows []Row) []Row {
		counts := make(map[string]int, len(rows))
		kept := rows[:0]
		for _, row := range rows {
			source := strings.ToLower(row.Bean.Source)
			if counts[source] >= keep {
				continue
			}
			counts[source]++
			kept = append(kept, row)
		}
		return kept
	}
}

// Paginate applies skip and limit. A limit of zero or less means no limit.
func Paginate(skip, limit int) Stage {
	return func(rows []Row) []Row {
		if skip >= len(rows) {
			return rows[:0]
		}
		rows = rows[skip:]
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}
		return rows
	}
}

// Projection maps a stored bean to the shape handed back to callers. The
// input bean is shared with the store's scan, so projections must copy, not
// mutate.
type Projection func(*core.Bean) *core.Bean

// DigestView is a projection for list views: everything except the full
// content body and the embedding vector.
func DigestView(b *core.Bean) *core.Bean {
	view := *b
	view.Content = ""
	view.Embedding = nil
	return &view
}

// Project maps each row's bean through the projection. A nil projection
// passes rows through untouched.
func Project(p Projection) Stage {
	if p == nil {
		return func(rows []Row) []Row { return rows }
	}
	return func(rows []Row) []Row {
		for i := range rows {
			rows[i].Bean = p(rows[i].Bean)
		}
		return rows
	}
}

// beansOf projects the rows back to beans.
func beansOf(rows []Row) []*core.Bean {
	beans := make([]*core.Bean, len(rows))
	for i, row := range rows {
		beans[i] = row.Bean
	}
	return beans
}

// capCount truncates a result count at the caller's limit, for "99+" style
// displays. A limit of zero or less leaves the count alone.
func capCount(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
