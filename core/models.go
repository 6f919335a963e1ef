package core

import (
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-crypt/x/blake2b"
)

// Page is a single page of text extracted from a source document.
// Pages are numbered starting at 1, in document order.
type Page struct {
	Text   string
	Number int
}

// Chunk is a bounded-size span of a page's text, the unit of embedding.
// TruncatedText is a byte-limited copy of Text carried as vector metadata;
// it never ends in a partial multi-byte rune.
type Chunk struct {
	Text          string
	PageNumber    int
	TruncatedText string
}

// DocumentRecord holds metadata about a stored source document.
// IngestedAt is the zero time until the document has been indexed.
type DocumentRecord struct {
	Key        string
	Name       string
	Size       int64
	PageCount  int
	ChunkCount int
	UploadedAt time.Time
	IngestedAt time.Time
}

// VectorIDFromText generates a deterministic vector identifier from chunk
// text using BLAKE2b hashing. Identical text always produces an identical
// ID, which makes index writes idempotent: re-ingesting an unchanged
// document overwrites rather than duplicates.
func VectorIDFromText(text string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 32 hex characters
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// namespaceMaxSanitized caps the readable portion of a namespace so the
// full identifier stays within vector store partition-name limits.
const namespaceMaxSanitized = 64

// NamespaceForKey derives the vector store namespace for a document storage
// key. The key is reduced to an ASCII-safe form (letters, digits, ".", "_",
// "-"; everything else dropped) and suffixed with an 8-character BLAKE2b
// hash of the full key, so distinct keys map to distinct namespaces even
// when their sanitized forms collide.
func NamespaceForKey(storageKey string) string {
	var b strings.Builder
	for _, r := range storageKey {
		if b.Len() >= namespaceMaxSanitized {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	sanitized := b.String()
	if sanitized == "" {
		sanitized = "doc"
	}

	h, _ := blake2b.New(4, nil) // 4 bytes = 8 hex characters
	h.Write([]byte(storageKey))
	return sanitized + "-" + hex.EncodeToString(h.Sum(nil))
}

// TruncateUTF8 returns s truncated to at most limit bytes without splitting
// a multi-byte rune: a trailing incomplete sequence is discarded rather
// than corrupted.
func TruncateUTF8(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
