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


// Package vectorstore defines the vector store abstraction used by the
// ingestion pipeline and the on-wire record shape shared by all backends.
//
// A Store partitions records by namespace: records written under one
// namespace are never visible under another, even when their IDs collide.
// Writes are upserts keyed by record ID; because docindex derives IDs from
// chunk content, re-writing the same records is idempotent.
//
// # Implementation Packages
//
//   - vectorstore/pinecone: REST client for a Pinecone-style index
//   - vectorstore/memory: in-process store for tests and local runs
//
// All Store implementations must be safe for concurrent use.
package vectorstore
