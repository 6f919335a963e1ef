// Copyright 2025 Poiesic Systems
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


// Package ai provides abstractions for the AI services used in docindex.
//
// This package defines the Embedder interface that the ingestion pipeline
// depends on, following the dependency inversion principle: the pipeline
// depends on the abstraction, never on a concrete embedding provider.
//
// # Implementation Packages
//
//   - ai/openai: production implementation backed by an OpenAI-compatible
//     embeddings API
//   - ai/mock: deterministic test double for unit testing without external
//     dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder INTERFACE
// to enforce abstraction. Test utility constructors (mock.NewMockEmbedder)
// return CONCRETE types so tests can inject behavior and assert call counts.
//
// # Thread Safety
//
// All Embedder implementations must be safe for concurrent use; the
// ingestion pipeline fans embedding calls out across a worker pool and
// shares a single Embedder between all tasks.
package ai
