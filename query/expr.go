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

import (
	"strings"
	"time"

	"github.com/cafecito/beansack/core"
)

// Field enumerates the bean attributes a filter clause can reference.
type Field int

const (
	FieldURL Field = iota
	FieldKind
	FieldSource
	FieldSharedIn
	FieldAuthor
	FieldTags
	FieldCategories
	FieldEntities
	FieldRegions
	FieldClusterID
	FieldCreated
	FieldUpdated
)

// Expr is one clause of a filter expression. Expressions form a small tagged
// variant set (Eq, AnyOf, And, Or, Not, TimeAfter, TimeBefore, Exists,
// ContentReady) that a backend lowers to its native matching primitive; for
// the badger backend that primitive is the in-process Predicate produced by
// Compile.
type Expr interface {
	isExpr()
}

// Eq matches beans whose field equals the value, case-insensitively.
// For set-valued fields the clause matches when any member equals the value.
type Eq struct {
	Field Field
	Value string
}

// AnyOf matches beans whose field intersects the value set, case-insensitively.
type AnyOf struct {
	Field  Field
	Values []string
}

// And matches beans satisfying every sub-expression.
type And struct {
	Exprs []Expr
}

// Or matches beans satisfying at least one sub-expression.
type Or struct {
	Exprs []Expr
}

// Not inverts a sub-expression.
type Not struct {
	Expr Expr
}

// TimeAfter matches beans whose time field is at or after the cutoff.
type TimeAfter struct {
	Field  Field
	Cutoff time.Time
}

// TimeBefore matches beans whose time field is strictly before the cutoff.
type TimeBefore struct {
	Field  Field
	Cutoff time.Time
}

// Exists matches beans whose set-valued field is non-empty.
type Exists struct {
	Field Field
}

// ContentReady matches fully processed beans: content is present and the
// not-yet-scraped flag is false or was never set.
type ContentReady struct{}

func (Eq) isExpr()           {}
func (AnyOf) isExpr()        {}
func (And) isExpr()          {}
func (Or) isExpr()           {}
func (Not) isExpr()          {}
func (TimeAfter) isExpr()    {}
func (TimeBefore) isExpr()   {}
func (Exists) isExpr()       {}
func (ContentReady) isExpr() {}

// Predicate is a compiled filter expression, evaluated per bean during scans.
type Predicate func(*core.Bean) bool

// MatchAll is the predicate of the empty filter.
func MatchAll(*core.Bean) bool { return true }

// Compile lowers an expression tree to a predicate over beans. A nil
// expression compiles to MatchAll.
func Compile(e Expr) Predicate {
	if e == nil {
		return MatchAll
	}

	switch x := e.(type) {
	case Eq:
		want := strings.ToLower(x.Value)
		return func(b *core.Bean) bool {
			return containsFold(fieldValues(b, x.Field), want)
		}
	case AnyOf:
		want := lowerSet(x.Values)
		return func(b *core.Bean) bool {
			for _, v := range fieldValues(b, x.Field) {
				if want[strings.ToLower(v)] {
					return true
				}
			}
			return false
		}
	case And:
		preds := compileAll(x.Exprs)
		return func(b *core.Bean) bool {
			for _, p := range preds {
				if !p(b) {
					return false
				}
			}
			return true
		}
	case Or:
		preds := compileAll(x.Exprs)
		return func(b *core.Bean) bool {
			for _, p := range preds {
				if p(b) {
					return true
				}
			}
			return false
		}
	case Not:
		p := Compile(x.Expr)
		return func(b *core.Bean) bool { return !p(b) }
	case TimeAfter:
		return func(b *core.Bean) bool {
			ts := timeValue(b, x.Field)
			return !ts.Before(x.Cutoff)
		}
	case TimeBefore:
		return func(b *core.Bean) bool {
			return timeValue(b, x.Field).Before(x.Cutoff)
		}
	case Exists:
		return func(b *core.Bean) bool {
			return len(fieldValues(b, x.Field)) > 0
		}
	case ContentReady:
		return func(b *core.Bean) bool { return b.HasContent() }
	default:
		return MatchAll
	}
}

func compileAll(exprs []Expr) []Predicate {
	preds := make([]Predicate, len(exprs))
	for i, e := range exprs {
		preds[i] = Compile(e)
	}
	return preds
}

// fieldValues returns the string values a clause on the given field matches
// against. Scalar fields yield a single-element slice.
func fieldValues(b *core.Bean, f Field) []string {
	switch f {
	case FieldURL:
		return scalar(b.URL)
	case FieldKind:
		return scalar(string(b.Kind))
	case FieldSource:
		return scalar(b.Source)
	case FieldSharedIn:
		return b.SharedIn
	case FieldAuthor:
		return scalar(b.Author)
	case FieldTags:
		return b.Tags
	case FieldCategories:
		return b.Categories
	case FieldEntities:
		return b.Entities
	case FieldRegions:
		return b.Regions
	case FieldClusterID:
		return scalar(b.ClusterID)
	default:
		return nil
	}
}

func timeValue(b *core.Bean, f Field) time.Time {
	if f == FieldUpdated {
		return b.Updated
	}
	return b.Created
}

func scalar(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func containsFold(values []string, wantLower string) bool {
	for _, v := range values {
		if strings.ToLower(v) == wantLower {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
