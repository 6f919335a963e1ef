package storage

import (
	"context"

	"github.com/poiesic/docindex/core"
)

// DocumentRepository provides operations for managing stored source
// documents: the raw bytes plus a metadata record per document.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// PutDocument stores a document's raw bytes and metadata record.
	// Sets UploadedAt and Size on the record if not already set.
	// Returns the record with populated fields.
	PutDocument(ctx context.Context, record *core.DocumentRecord, data []byte) (*core.DocumentRecord, error)

	// GetDocument retrieves a document's metadata record by storage key.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, key string) (*core.DocumentRecord, error)

	// FetchData retrieves a document's raw bytes by storage key.
	// Returns ErrNotFound if the document doesn't exist.
	FetchData(ctx context.Context, key string) ([]byte, error)

	// ListDocuments retrieves all document metadata records.
	ListDocuments(ctx context.Context) ([]*core.DocumentRecord, error)

	// DeleteDocument removes a document's bytes and metadata record.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, key string) error

	// MarkIngested records a completed ingestion run: page and chunk counts
	// plus the ingestion timestamp. Returns the updated record.
	// Returns ErrNotFound if the document doesn't exist.
	MarkIngested(ctx context.Context, key string, pageCount, chunkCount int) (*core.DocumentRecord, error)

	// Close closes the repository and releases resources.
	Close() error
}
