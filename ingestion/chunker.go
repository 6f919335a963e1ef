package ingestion

import (
	"strings"

	"github.com/poiesic/docindex/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// Chunker defaults. The window size and overlap are tunables, not a hard
// contract; chunking is deterministic for any fixed configuration.
const (
	// DefaultChunkSize is the maximum window size in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the number of characters adjacent windows share.
	DefaultChunkOverlap = 200

	// DefaultMetadataBytes caps the byte length of the text copy carried in
	// vector metadata, below the vector store's per-record metadata ceiling.
	DefaultMetadataBytes = 36000
)

// ChunkerConfig holds chunking configuration. Zero fields fall back to the
// package defaults.
type ChunkerConfig struct {
	ChunkSize     int
	ChunkOverlap  int
	MetadataBytes int
}

// Chunker splits page text into overlapping windows sized for embedding.
// It is stateless after construction and safe for concurrent use.
type Chunker struct {
	splitter      textsplitter.RecursiveCharacter
	metadataBytes int
}

// NewChunker creates a Chunker. Splitting prefers the largest boundary that
// keeps a window under the configured size: paragraph, then line, then
// word, then character.
func NewChunker(cfg ChunkerConfig) *Chunker {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.MetadataBytes <= 0 {
		cfg.MetadataBytes = DefaultMetadataBytes
	}

	return &Chunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
		metadataBytes: cfg.MetadataBytes,
	}
}

var newlineStripper = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// ChunkPage splits one page into chunks carrying page provenance and a
// byte-limited text copy for vector metadata. Newlines are removed before
// splitting: windows are determined by character count, not paragraph
// structure. Empty page text yields an empty chunk sequence.
func (c *Chunker) ChunkPage(page core.Page) ([]core.Chunk, error) {
	text := newlineStripper.Replace(page.Text)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	windows, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]core.Chunk, 0, len(windows))
	for _, window := range windows {
		if window == "" {
			continue
		}
		chunks = append(chunks, core.Chunk{
			Text:          window,
			PageNumber:    page.Number,
			TruncatedText: core.TruncateUTF8(window, c.metadataBytes),
		})
	}
	return chunks, nil
}
