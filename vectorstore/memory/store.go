// Package memory provides an in-process vectorstore.Store used by tests
// and local runs. Records are held per namespace in plain maps.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/poiesic/docindex/vectorstore"
)

// Store implements vectorstore.Store in memory.
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]vectorstore.Record
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		namespaces: make(map[string]map[string]vectorstore.Record),
	}
}

// Upsert inserts or overwrites records under the given namespace.
func (s *Store) Upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if namespace == "" {
		return vectorstore.ErrEmptyNamespace
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = make(map[string]vectorstore.Record)
		s.namespaces[namespace] = ns
	}
	for _, record := range records {
		ns[record.ID] = record
	}
	return nil
}

// Query returns the topK most similar records in the namespace by dot
// product, best first.
func (s *Store) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if namespace == "" {
		return nil, vectorstore.ErrEmptyNamespace
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []vectorstore.Match
	for _, record := range s.namespaces[namespace] {
		matches = append(matches, vectorstore.Match{
			ID:       record.ID,
			Score:    dotProduct(vector, record.Values),
			Metadata: record.Metadata,
		})
	}

	slices.SortFunc(matches, func(a, b vectorstore.Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Records returns a copy of all records in the namespace, sorted by ID.
// Intended for test assertions.
func (s *Store) Records(namespace string) []vectorstore.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]vectorstore.Record, 0, len(s.namespaces[namespace]))
	for _, record := range s.namespaces[namespace] {
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b vectorstore.Record) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return records
}

// Count returns the number of records in the namespace.
func (s *Store) Count(namespace string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.namespaces[namespace])
}

// Close implements vectorstore.Store. It is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}

func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
