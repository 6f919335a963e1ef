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


// Package storage provides the document storage abstraction for docindex.
//
// This package defines the repository interface that decouples storage
// implementation from the ingestion pipeline. The pipeline only ever needs
// "fetch document bytes by key"; the wider repository surface (put, list,
// delete, mark ingested) serves the CLI and the library facade.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.DocumentRepository interface to
// enforce abstraction and enable alternative backends:
//
//	repo, err := badger.NewDocumentRepository(backend)
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
