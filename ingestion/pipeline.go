/*
 * Copyright 2025 Poiesic Systems
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docindex/ai"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/storage"
	"github.com/poiesic/docindex/vectorstore"
)

// Pipeline ingests documents from a repository into a vector store.
// A Pipeline is safe for concurrent use; each IngestDocument call runs
// independently on the shared worker pools.
type Pipeline struct {
	documents storage.DocumentRepository
	embedder  ai.Embedder
	extractor PageExtractor
	chunker   *Chunker
	writer    *indexWriter

	chunkPool *ants.Pool
	embedPool *ants.Pool

	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline during construction.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for the chunking and embedding
// stages. The embedding pool size bounds concurrent embedding calls.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("pool size must be at least 1, got %d", size)
		}

		chunkPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		embedPool, err := ants.NewPool(size)
		if err != nil {
			chunkPool.Release()
			return err
		}

		p.chunkPool.Release()
		p.embedPool.Release()
		p.chunkPool = chunkPool
		p.embedPool = embedPool
		return nil
	}
}

// WithLogger sets the logger used by the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		p.logger = logger
		return nil
	}
}

// WithChunkerConfig overrides the default chunking configuration.
func WithChunkerConfig(cfg ChunkerConfig) Option {
	return func(p *Pipeline) error {
		p.chunker = NewChunker(cfg)
		return nil
	}
}

// WithBatchSize sets the number of vectors per upsert call.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be at least 1, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithExtractor replaces the default PDF page extractor.
func WithExtractor(extractor PageExtractor) Option {
	return func(p *Pipeline) error {
		p.extractor = extractor
		return nil
	}
}

// NewPipeline creates a Pipeline over the given repository, embedder and
// vector store. Defaults: PDF page extraction, worker pools sized to half
// the CPU count, and the package chunking and batching defaults.
func NewPipeline(documents storage.DocumentRepository, embedder ai.Embedder, vectors vectorstore.Store, opts ...Option) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	chunkPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	embedPool, err := ants.NewPool(poolSize)
	if err != nil {
		chunkPool.Release()
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		embedder:  embedder,
		extractor: NewPDFExtractor(),
		chunker:   NewChunker(ChunkerConfig{}),
		chunkPool: chunkPool,
		embedPool: embedPool,
		batchSize: DefaultUpsertBatchSize,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Close()
			return nil, err
		}
	}

	p.writer = newIndexWriter(vectors, p.batchSize, p.logger)
	return p, nil
}

// Close releases the pipeline's worker pools. The repository, embedder and
// vector store are owned by the caller and are left open.
func (p *Pipeline) Close() {
	p.chunkPool.Release()
	p.embedPool.Release()
}

// IngestDocument runs the full ingestion for the document stored under
// storageKey and returns the chunks produced from its first page. The
// returned error wraps the failed stage's sentinel (ErrFetch, ErrParse,
// ErrEmbed or ErrWrite). Ingestion is idempotent: vector IDs are content
// hashes, so re-running a document overwrites its existing vectors in
// place.
func (p *Pipeline) IngestDocument(ctx context.Context, storageKey string) ([]core.Chunk, error) {
	logger := p.logger.With("document", storageKey)
	logger.Info("starting ingestion")

	data, err := p.documents.FetchData(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, storageKey, err)
	}

	pages, err := p.extractor.ExtractPages(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrParse, storageKey, err)
	}
	logger.Debug("extracted pages", "pages", len(pages))

	pageChunks, err := p.chunkPages(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrParse, storageKey, err)
	}

	var chunks []core.Chunk
	for _, pc := range pageChunks {
		chunks = append(chunks, pc...)
	}

	if len(chunks) > 0 {
		records, err := p.embedChunks(ctx, chunks)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrEmbed, storageKey, err)
		}

		namespace := core.NamespaceForKey(storageKey)
		if err := p.writer.upsert(ctx, namespace, records); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrWrite, storageKey, err)
		}
		logger.Info("ingestion complete",
			"namespace", namespace,
			"pages", len(pages),
			"chunks", len(chunks),
		)
	} else {
		logger.Warn("document produced no chunks", "pages", len(pages))
	}

	// Best effort: the vectors are already written, a metadata failure
	// does not fail the run.
	if _, err := p.documents.MarkIngested(ctx, storageKey, len(pages), len(chunks)); err != nil {
		logger.Warn("failed to record ingestion metadata", "error", err)
	}

	if len(pageChunks) == 0 {
		return nil, nil
	}
	return pageChunks[0], nil
}

// chunkPages chunks every page concurrently on the chunking pool. Results
// keep page order. The first error cancels outstanding work.
func (p *Pipeline) chunkPages(ctx context.Context, pages []core.Page) ([][]core.Chunk, error) {
	results := make([][]core.Chunk, len(pages))

	err := p.forEach(ctx, p.chunkPool, len(pages), func(_ context.Context, i int) error {
		chunks, err := p.chunker.ChunkPage(pages[i])
		if err != nil {
			return fmt.Errorf("page %d: %w", pages[i].Number, err)
		}
		results[i] = chunks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// embedChunks embeds every chunk concurrently on the embedding pool and
// builds its vector record. Results keep chunk order.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []core.Chunk) ([]vectorstore.Record, error) {
	records := make([]vectorstore.Record, len(chunks))

	err := p.forEach(ctx, p.embedPool, len(chunks), func(ctx context.Context, i int) error {
		values, err := p.embedder.EmbedText(ctx, chunks[i].Text)
		if err != nil {
			return fmt.Errorf("page %d: %w", chunks[i].PageNumber, err)
		}
		records[i] = vectorstore.Record{
			ID:     core.VectorIDFromText(chunks[i].Text),
			Values: values,
			Metadata: vectorstore.Metadata{
				Text:       chunks[i].TruncatedText,
				PageNumber: chunks[i].PageNumber,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// forEach runs fn for indices 0..n-1 on the pool and waits for completion.
// The first failure cancels the remaining tasks and is returned; tasks not
// yet started observe the cancellation and return without running fn.
func (p *Pipeline) forEach(ctx context.Context, pool *ants.Pool, n int, fn func(ctx context.Context, i int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for i := range n {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := fn(ctx, i); err != nil {
				fail(err)
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
