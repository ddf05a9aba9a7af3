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


package query

import "time"

// Filter collects the user-facing query parameters and builds the backing
// filter expression. Filters carry relative time windows, so they must be
// built fresh per request; a Filter value itself is never cached.
type Filter struct {
	// Kinds restricts by content kind; one value is an equality clause,
	// several are an any-of clause.
	Kinds []string

	// TagGroups is a conjunction of any-of clauses over the tag set: a bean
	// must intersect every group ("must match tag A AND one of B1,B2,B3").
	// A single flat list of tags is one group.
	TagGroups [][]string

	// Categories, Entities and Regions each contribute one any-of clause on
	// their respective set.
	Categories []string
	Entities   []string
	Regions    []string

	// Sources matches the publisher id or any channel the content was shared
	// in. Authors matches the author field. Both are case-insensitive.
	Sources []string
	Authors []string

	// CreatedInLastDays / UpdatedInLastDays translate a day-count window into
	// an absolute lower bound relative to now at Build time. Zero disables
	// the clause.
	CreatedInLastDays int
	UpdatedInLastDays int

	// ClusterID restricts to a single story cluster.
	ClusterID string

	// ExcludeURL drops a single bean, used when sampling related items.
	ExcludeURL string

	// RequireContent gates on fully processed beans only: content present
	// and the not-yet-scraped flag cleared.
	RequireContent bool
}

// WithTags is a convenience for the common single-group case.
func (f Filter) WithTags(tags ...string) Filter {
	if len(tags) > 0 {
		f.TagGroups = append(f.TagGroups, tags)
	}
	return f
}

// Build translates the parameters into a filter expression. The result is a
// pure function of the parameters and the current time.
func (f Filter) Build() Expr {
	return f.BuildAt(time.Now())
}

// BuildAt is Build with an explicit reference time, used by tests.
func (f Filter) BuildAt(now time.Time) Expr {
	var clauses []Expr

	if len(f.Kinds) == 1 {
		clauses = append(clauses, Eq{Field: FieldKind, Value: f.Kinds[0]})
	} else if len(f.Kinds) > 1 {
		clauses = append(clauses, AnyOf{Field: FieldKind, Values: f.Kinds})
	}

	for _, group := range f.TagGroups {
		if len(group) == 1 {
			clauses = append(clauses, Eq{Field: FieldTags, Value: group[0]})
		} else if len(group) > 1 {
			clauses = append(clauses, AnyOf{Field: FieldTags, Values: group})
		}
	}

	if len(f.Categories) > 0 {
		clauses = append(clauses, AnyOf{Field: FieldCategories, Values: f.Categories})
	}
	if len(f.Entities) > 0 {
		clauses = append(clauses, AnyOf{Field: FieldEntities, Values: f.Entities})
	}
	if len(f.Regions) > 0 {
		clauses = append(clauses, AnyOf{Field: FieldRegions, Values: f.Regions})
	}

	if len(f.Sources) > 0 {
		// content matches when published by the source or redistributed
		// through it
		clauses = append(clauses, Or{Exprs: []Expr{
			AnyOf{Field: FieldSource, Values: f.Sources},
			AnyOf{Field: FieldSharedIn, Values: f.Sources},
		}})
	}
	if len(f.Authors) > 0 {
		clauses = append(clauses, AnyOf{Field: FieldAuthor, Values: f.Authors})
	}

	if f.CreatedInLastDays > 0 {
		clauses = append(clauses, TimeAfter{Field: FieldCreated, Cutoff: now.AddDate(0, 0, -f.CreatedInLastDays)})
	}
	if f.UpdatedInLastDays > 0 {
		clauses = append(clauses, TimeAfter{Field: FieldUpdated, Cutoff: now.AddDate(0, 0, -f.UpdatedInLastDays)})
	}

	if f.ClusterID != "" {
		clauses = append(clauses, Eq{Field: FieldClusterID, Value: f.ClusterID})
	}
	if f.ExcludeURL != "" {
		clauses = append(clauses, Not{Expr: Eq{Field: FieldURL, Value: f.ExcludeURL}})
	}
	if f.RequireContent {
		clauses = append(clauses, ContentReady{})
	}

	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	default:
		return And{Exprs: clauses}
	}
}
