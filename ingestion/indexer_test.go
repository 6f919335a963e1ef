package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/poiesic/docindex/vectorstore"
	"github.com/poiesic/docindex/vectorstore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records the size of every upsert batch and can be told to
// fail from a given call onward.
type countingStore struct {
	*memory.Store

	mu      sync.Mutex
	batches []int
	failAt  int // 1-based call index to start failing at, 0 means never
}

func newCountingStore(failAt int) *countingStore {
	return &countingStore{Store: memory.NewStore(), failAt: failAt}
}

func (c *countingStore) Upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	c.mu.Lock()
	c.batches = append(c.batches, len(records))
	call := len(c.batches)
	c.mu.Unlock()

	if c.failAt > 0 && call >= c.failAt {
		return errors.New("store unavailable")
	}
	return c.Store.Upsert(ctx, namespace, records)
}

func (c *countingStore) batchSizes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.batches...)
}

func makeRecords(n int) []vectorstore.Record {
	records := make([]vectorstore.Record, n)
	for i := range records {
		records[i] = vectorstore.Record{
			ID:     fmt.Sprintf("id-%03d", i),
			Values: []float32{float32(i)},
		}
	}
	return records
}

func TestIndexWriterBatches(t *testing.T) {
	tests := []struct {
		name    string
		records int
		want    []int
	}{
		{"empty", 0, nil},
		{"partial batch", 7, []int{7}},
		{"exact batch", 10, []int{10}},
		{"multiple batches", 25, []int{10, 10, 5}},
		{"exact multiple", 30, []int{10, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newCountingStore(0)
			writer := newIndexWriter(store, 10, slog.Default())

			err := writer.upsert(context.Background(), "ns", makeRecords(tt.records))
			require.NoError(t, err)

			assert.Equal(t, tt.want, store.batchSizes())
			assert.Equal(t, tt.records, store.Count("ns"))
		})
	}
}

func TestIndexWriterStopsOnFirstFailure(t *testing.T) {
	store := newCountingStore(2)
	writer := newIndexWriter(store, 10, slog.Default())

	err := writer.upsert(context.Background(), "ns", makeRecords(35))
	require.Error(t, err)

	// First batch applied, second failed, third and fourth never attempted.
	assert.Equal(t, []int{10, 10}, store.batchSizes())
	assert.Equal(t, 10, store.Count("ns"))
}

func TestIndexWriterDefaultBatchSize(t *testing.T) {
	store := newCountingStore(0)
	writer := newIndexWriter(store, 0, slog.Default())

	require.NoError(t, writer.upsert(context.Background(), "ns", makeRecords(12)))
	assert.Equal(t, []int{DefaultUpsertBatchSize, 2}, store.batchSizes())
}
