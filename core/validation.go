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


package core

import (
	"fmt"
	"time"
)

// Caller-surface parameter bounds. Callers validate before reaching the
// retrieval engine; the engine re-checks and fails fast with
// ErrInvalidParameter.
const (
	MinWindowDays = 1
	MaxWindowDays = 30

	MinLimit = 1
	MaxLimit = 100
)

// ValidateBean validates a Bean according to domain rules.
//
// Validation rules:
//   - URL must not be empty
//   - Kind must be one of the enumerated values (or empty before classification)
//   - Created must not be in the future
//
// NOT validated (populated by external processors):
//   - Embedding (can be empty until backfilled)
//   - ClusterID and TrendScore (assigned by the dedup/trend pipelines)
func ValidateBean(bean *Bean) error {
	if bean == nil {
		return fmt.Errorf("%w: bean is nil", ErrInvalidBean)
	}

	if bean.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBean, ErrEmptyURL)
	}

	if err := ValidateKind(bean.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBean, err)
	}

	if !IsValidTimestamp(bean.Created) {
		return fmt.Errorf("%w: %w", ErrInvalidBean, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateKind validates that a Kind has a recognized value.
// An empty Kind is allowed: classification happens upstream and may lag.
func ValidateKind(kind Kind) error {
	switch kind {
	case "", KindNews, KindBlog, KindPost, KindGenerated:
		return nil
	default:
		return fmt.Errorf("%w: value %q", ErrInvalidKind, kind)
	}
}

// ValidateWindow checks that a day-count window is within [MinWindowDays, MaxWindowDays].
func ValidateWindow(days int) error {
	if days < MinWindowDays || days > MaxWindowDays {
		return fmt.Errorf("%w: window %d outside [%d, %d]", ErrInvalidParameter, days, MinWindowDays, MaxWindowDays)
	}
	return nil
}

// ValidateLimit checks that a page limit is within [MinLimit, MaxLimit].
func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("%w: limit %d outside [%d, %d]", ErrInvalidParameter, limit, MinLimit, MaxLimit)
	}
	return nil
}

// ValidateSkip checks that a pagination offset is non-negative.
func ValidateSkip(skip int) error {
	if skip < 0 {
		return fmt.Errorf("%w: skip %d is negative", ErrInvalidParameter, skip)
	}
	return nil
}

// ValidateAccuracy checks that a similarity score threshold is within [0, 1].
func ValidateAccuracy(accuracy float32) error {
	if accuracy < 0 || accuracy > 1 {
		return fmt.Errorf("%w: accuracy %f outside [0, 1]", ErrInvalidParameter, accuracy)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
