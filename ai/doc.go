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


// Package ai defines the embedding abstractions used by Beansack.
//
// The package holds the Embedder and Provider interfaces plus their shared
// configuration. Concrete implementations live in sub-packages:
//
//   - ai/openai: production implementation over OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with no external dependency
//
// Search and ingestion code depends only on the interfaces, so providers can
// be swapped without touching business logic. Constructors in the
// implementation packages return the interface types; the mock package also
// exposes its concrete types for test assertions.
package ai
