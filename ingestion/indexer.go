package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/docindex/vectorstore"
)

// DefaultUpsertBatchSize is the default number of vectors per upsert call,
// sized to respect the vector store's per-request payload limit.
const DefaultUpsertBatchSize = 10

// indexWriter writes vector records to the store in consecutive batches.
type indexWriter struct {
	store     vectorstore.Store
	batchSize int
	logger    *slog.Logger
}

func newIndexWriter(store vectorstore.Store, batchSize int, logger *slog.Logger) *indexWriter {
	if batchSize <= 0 {
		batchSize = DefaultUpsertBatchSize
	}
	return &indexWriter{
		store:     store,
		batchSize: batchSize,
		logger:    logger.With("component", "index-writer"),
	}
}

// upsert writes records under the namespace in batches of at most
// batchSize, one store call per batch. Batches are independent write units;
// on the first batch failure remaining batches are aborted and the error is
// surfaced. A failure partway through leaves a prefix of batches applied;
// content-hash IDs make a re-run convergent, so no rollback is attempted.
func (w *indexWriter) upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	for start := 0; start < len(records); start += w.batchSize {
		end := min(start+w.batchSize, len(records))

		if err := w.store.Upsert(ctx, namespace, records[start:end]); err != nil {
			return fmt.Errorf("batch %d-%d of %d: %w", start, end, len(records), err)
		}

		w.logger.Debug("upserted batch",
			"namespace", namespace,
			"from", start,
			"to", end,
			"total", len(records),
		)
	}
	return nil
}
