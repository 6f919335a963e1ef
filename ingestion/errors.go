package ingestion

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")
)

// Stage errors. Each ingestion failure wraps exactly one of these along
// with the originating cause, so callers can tell which stage failed with
// errors.Is while keeping the full chain.
var (
	// ErrFetch indicates the document was absent or unreadable.
	ErrFetch = errors.New("document fetch failed")

	// ErrParse indicates the document bytes could not be parsed into pages.
	ErrParse = errors.New("page extraction failed")

	// ErrEmbed indicates an embedding call failed.
	ErrEmbed = errors.New("embedding failed")

	// ErrWrite indicates a vector store upsert failed. Batches already
	// applied are not rolled back; re-running the ingestion is the
	// recovery path.
	ErrWrite = errors.New("index write failed")
)
