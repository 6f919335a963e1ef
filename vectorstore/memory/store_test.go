package memory

import (
	"context"
	"testing"

	"github.com/poiesic/docindex/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("stores records", func(t *testing.T) {
		store := NewStore()
		err := store.Upsert(ctx, "ns", []vectorstore.Record{
			{ID: "a", Values: []float32{1, 0}},
			{ID: "b", Values: []float32{0, 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, store.Count("ns"))
	})

	t.Run("upsert overwrites by id", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Upsert(ctx, "ns", []vectorstore.Record{
			{ID: "a", Values: []float32{1, 0}, Metadata: vectorstore.Metadata{Text: "old"}},
		}))
		require.NoError(t, store.Upsert(ctx, "ns", []vectorstore.Record{
			{ID: "a", Values: []float32{1, 0}, Metadata: vectorstore.Metadata{Text: "new"}},
		}))

		records := store.Records("ns")
		require.Len(t, records, 1)
		assert.Equal(t, "new", records[0].Metadata.Text)
	})

	t.Run("rejects empty namespace", func(t *testing.T) {
		store := NewStore()
		err := store.Upsert(ctx, "", []vectorstore.Record{{ID: "a"}})
		assert.ErrorIs(t, err, vectorstore.ErrEmptyNamespace)
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		store := NewStore()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := store.Upsert(cancelled, "ns", []vectorstore.Record{{ID: "a"}})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_NamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	// Same ID in two namespaces must never cross over.
	require.NoError(t, store.Upsert(ctx, "doc-a", []vectorstore.Record{
		{ID: "shared", Values: []float32{1, 0}, Metadata: vectorstore.Metadata{Text: "from a", PageNumber: 1}},
	}))
	require.NoError(t, store.Upsert(ctx, "doc-b", []vectorstore.Record{
		{ID: "shared", Values: []float32{1, 0}, Metadata: vectorstore.Metadata{Text: "from b", PageNumber: 2}},
	}))

	matchesA, err := store.Query(ctx, "doc-a", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matchesA, 1)
	assert.Equal(t, "from a", matchesA[0].Metadata.Text)

	matchesB, err := store.Query(ctx, "doc-b", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matchesB, 1)
	assert.Equal(t, "from b", matchesB[0].Metadata.Text)

	matchesC, err := store.Query(ctx, "doc-c", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, matchesC)
}

func TestStore_Query(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Upsert(ctx, "ns", []vectorstore.Record{
		{ID: "close", Values: []float32{1, 0}},
		{ID: "far", Values: []float32{0, 1}},
		{ID: "mid", Values: []float32{0.5, 0.5}},
	}))

	matches, err := store.Query(ctx, "ns", []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "close", matches[0].ID)
	assert.Equal(t, "mid", matches[1].ID)
}
