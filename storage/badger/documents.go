package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
// Raw document bytes and the metadata record are stored under separate
// keys so listing never loads document payloads.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
//
// Returns storage.DocumentRepository interface to enforce abstraction.
func NewDocumentRepository(backend *Backend) (storage.DocumentRepository, error) {
	return &DocumentRepository{backend: backend}, nil
}

// Close implements storage.DocumentRepository. The backend owns the
// database handle and is closed separately.
func (r *DocumentRepository) Close() error {
	return nil
}

// PutDocument stores a document's raw bytes and metadata record.
func (r *DocumentRepository) PutDocument(ctx context.Context, record *core.DocumentRecord, data []byte) (*core.DocumentRecord, error) {
	if err := core.ValidateDocumentRecord(record); err != nil {
		return nil, err
	}

	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now().UTC()
	}
	if record.Size == 0 {
		record.Size = int64(len(data))
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeDocumentRecordKey(record.Key), storage.MarshalDocumentRecord(record)); err != nil {
			return err
		}
		if err := tx.Set(makeDocumentDataKey(record.Key), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetDocument retrieves a document's metadata record by storage key.
func (r *DocumentRepository) GetDocument(ctx context.Context, key string) (*core.DocumentRecord, error) {
	var record *core.DocumentRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = r.readRecord(tx, key)
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// FetchData retrieves a document's raw bytes by storage key.
func (r *DocumentRepository) FetchData(ctx context.Context, key string) ([]byte, error) {
	var data []byte

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentDataKey(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// ListDocuments retrieves all document metadata records.
func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*core.DocumentRecord, error) {
	var records []*core.DocumentRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.DocumentRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalDocumentRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// DeleteDocument removes a document's bytes and metadata record.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, key string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := r.readRecord(tx, key); err != nil {
			return err
		}
		if err := tx.Delete(makeDocumentRecordKey(key)); err != nil {
			return err
		}
		if err := tx.Delete(makeDocumentDataKey(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// MarkIngested records a completed ingestion run on the metadata record.
func (r *DocumentRepository) MarkIngested(ctx context.Context, key string, pageCount, chunkCount int) (*core.DocumentRecord, error) {
	var record *core.DocumentRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = r.readRecord(tx, key)
		if err != nil {
			return err
		}

		record.PageCount = pageCount
		record.ChunkCount = chunkCount
		record.IngestedAt = time.Now().UTC()

		if err := tx.Set(makeDocumentRecordKey(key), storage.MarshalDocumentRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// readRecord reads a document record within a transaction.
// Returns storage.ErrNotFound if the record doesn't exist.
func (r *DocumentRepository) readRecord(tx *badger.Txn, key string) (*core.DocumentRecord, error) {
	item, err := tx.Get(makeDocumentRecordKey(key))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var record *core.DocumentRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalDocumentRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
