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

// Package docindex turns stored documents into searchable vector indexes.
// Library wires together the document repository, the embedding provider
// and the vector store; the ingestion subpackage does the heavy lifting.
package docindex

import (
	"context"
	"log/slog"

	"github.com/poiesic/docindex/ai"
	"github.com/poiesic/docindex/ai/openai"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/ingestion"
	"github.com/poiesic/docindex/storage"
	"github.com/poiesic/docindex/storage/badger"
	"github.com/poiesic/docindex/vectorstore"
	"github.com/poiesic/docindex/vectorstore/memory"
)

// Library is the top-level handle over a document store and its vector
// index.
type Library struct {
	backend  *badger.Backend
	docs     storage.DocumentRepository
	embedder ai.Embedder
	vectors  vectorstore.Store
	logger   *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
	vectors  vectorstore.Store
}

// WithAIConfig sets the embedding provider configuration. Ignored when
// WithEmbedder is also given.
func WithAIConfig(cfg *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = cfg
	}
}

// WithEmbedder supplies a pre-built embedder instead of constructing one
// from the AI configuration.
func WithEmbedder(embedder ai.Embedder) LibraryOption {
	return func(o *libraryOptions) {
		o.embedder = embedder
	}
}

// WithVectorStore sets the vector store. The default is an in-process
// store that does not survive restarts; production setups pass a remote
// store here.
func WithVectorStore(store vectorstore.Store) LibraryOption {
	return func(o *libraryOptions) {
		o.vectors = store
	}
}

// Open opens (creating if needed) the document database at filePath and
// assembles a Library around it.
func Open(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	docs, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			docs.Close()
			backend.Close()
			return nil, err
		}
	}

	vectors := options.vectors
	if vectors == nil {
		vectors = memory.NewStore()
	}

	return &Library{
		backend:  backend,
		docs:     docs,
		embedder: embedder,
		vectors:  vectors,
		logger:   slog.Default(),
	}, nil
}

// Close releases the vector store, the document repository and the
// underlying database, in that order.
func (l *Library) Close() error {
	if err := l.vectors.Close(); err != nil {
		l.logger.Error("error closing vector store", "err", err)
	}

	if err := l.docs.Close(); err != nil {
		l.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// DocumentRepository returns the underlying document repository.
func (l *Library) DocumentRepository() storage.DocumentRepository {
	return l.docs
}

// VectorStore returns the underlying vector store.
func (l *Library) VectorStore() vectorstore.Store {
	return l.vectors
}

// NewIngestionPipeline builds an ingestion pipeline over the library's
// repository, embedder and vector store.
func (l *Library) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(l.docs, l.embedder, l.vectors, opts...)
}

// AddDocument stores a document's raw bytes under the given storage key.
// It does not index the document; call Ingest for that.
func (l *Library) AddDocument(ctx context.Context, key, name string, data []byte) (*core.DocumentRecord, error) {
	return l.docs.PutDocument(ctx, &core.DocumentRecord{Key: key, Name: name}, data)
}

// Ingest runs the ingestion pipeline for one stored document and returns
// the chunks produced from its first page.
func (l *Library) Ingest(ctx context.Context, key string, opts ...ingestion.Option) ([]core.Chunk, error) {
	pipeline, err := l.NewIngestionPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Close()

	return pipeline.IngestDocument(ctx, key)
}

// Documents lists the metadata records of all stored documents.
func (l *Library) Documents(ctx context.Context) ([]*core.DocumentRecord, error) {
	return l.docs.ListDocuments(ctx)
}

// RemoveDocument deletes a document's bytes and metadata record. Vectors
// already written for the document stay in its namespace; a later
// ingestion under the same key overwrites them.
func (l *Library) RemoveDocument(ctx context.Context, key string) error {
	return l.docs.DeleteDocument(ctx, key)
}
