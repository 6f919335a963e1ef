package vectorstore

import "context"

// Metadata is the payload stored alongside a vector. The JSON field names
// are part of the index interop contract and must not change.
type Metadata struct {
	// Text is a byte-limited copy of the chunk text, capped upstream so the
	// record stays under the store's per-record metadata ceiling.
	Text string `json:"text"`

	// PageNumber is the source page the chunk came from.
	PageNumber int `json:"pageNumber"`
}

// Record is one embedded chunk as written to the vector store.
// Immutable once created.
type Record struct {
	// ID is the content hash of the chunk text.
	ID string `json:"id"`

	// Values is the embedding; its length is constant across all records
	// ever written to a given index.
	Values []float32 `json:"values"`

	Metadata Metadata `json:"metadata"`
}

// Match is a single result from a similarity query.
type Match struct {
	ID       string   `json:"id"`
	Score    float32  `json:"score"`
	Metadata Metadata `json:"metadata"`
}

// Store writes and queries embedded chunks, partitioned by namespace.
// Implementations must be thread-safe for concurrent use.
type Store interface {
	// Upsert inserts or overwrites records under the given namespace.
	// The whole slice is one write unit: the backend fully applies or
	// rejects it. Callers are responsible for splitting large inputs into
	// batches that respect the backend's payload ceiling.
	Upsert(ctx context.Context, namespace string, records []Record) error

	// Query returns the topK records most similar to the given vector
	// within the namespace, best first.
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error)

	// Close releases resources held by the store.
	Close() error
}
