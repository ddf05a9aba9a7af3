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


// Package search implements the retrieval engine over the bean store.
//
// Each retrieval mode is an explicit pipeline of composable stages over
// scored rows: match, threshold, sort, cluster collapse, source cap,
// paginate. The Engine offers five modes:
//
//   - GetBeans: filtered retrieval under a sort policy
//   - VectorSearch / SemanticSearch: cosine similarity over embeddings
//   - TextSearch: term-frequency relevance with a configurable minimum
//   - UniqueBeans: cluster-collapsed retrieval with an optional source cap
//   - RelatedBeans: sampled members of a seed bean's story cluster
//
// plus tag-frequency aggregation and chatter (engagement) consolidation.
// Count variants run the same pipelines without pagination and cap the
// result at the caller's limit.
package search
