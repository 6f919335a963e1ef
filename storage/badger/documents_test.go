package badger

import (
	"context"
	"testing"

	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.DocumentRepository {
	t.Helper()

	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	return repo
}

func TestDocumentRepository_PutAndGet(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	record := &core.DocumentRecord{
		Key:  "uploads/report.pdf",
		Name: "report.pdf",
	}
	data := []byte("%PDF-1.4 fake document body")

	stored, err := repo.PutDocument(ctx, record, data)
	require.NoError(t, err)
	assert.False(t, stored.UploadedAt.IsZero())
	assert.Equal(t, int64(len(data)), stored.Size)

	got, err := repo.GetDocument(ctx, "uploads/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Name)
	assert.True(t, got.IngestedAt.IsZero())
}

func TestDocumentRepository_PutValidation(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	_, err := repo.PutDocument(ctx, &core.DocumentRecord{}, []byte("data"))
	assert.ErrorIs(t, err, core.ErrInvalidDocumentRecord)
}

func TestDocumentRepository_FetchData(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0xfe}
	_, err := repo.PutDocument(ctx, &core.DocumentRecord{Key: "k"}, data)
	require.NoError(t, err)

	got, err := repo.FetchData(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDocumentRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	_, err := repo.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.FetchData(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteDocument(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.MarkIngested(ctx, "missing", 1, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocumentRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	keys := []string{"a.pdf", "b.pdf", "c.pdf"}
	for _, key := range keys {
		_, err := repo.PutDocument(ctx, &core.DocumentRecord{Key: key, Name: key}, []byte(key))
		require.NoError(t, err)
	}

	records, err := repo.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	seen := map[string]bool{}
	for _, record := range records {
		seen[record.Key] = true
	}
	for _, key := range keys {
		assert.True(t, seen[key], "missing %s", key)
	}
}

func TestDocumentRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	_, err := repo.PutDocument(ctx, &core.DocumentRecord{Key: "k"}, []byte("data"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteDocument(ctx, "k"))

	_, err = repo.GetDocument(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.FetchData(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocumentRepository_MarkIngested(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	_, err := repo.PutDocument(ctx, &core.DocumentRecord{Key: "k"}, []byte("data"))
	require.NoError(t, err)

	updated, err := repo.MarkIngested(ctx, "k", 12, 37)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.PageCount)
	assert.Equal(t, 37, updated.ChunkCount)
	assert.False(t, updated.IngestedAt.IsZero())

	got, err := repo.GetDocument(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 37, got.ChunkCount)
	assert.False(t, got.IngestedAt.IsZero())
}

func TestDocumentRepository_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	_, err := repo.PutDocument(ctx, &core.DocumentRecord{Key: "k", Name: "v1"}, []byte("one"))
	require.NoError(t, err)
	_, err = repo.PutDocument(ctx, &core.DocumentRecord{Key: "k", Name: "v2"}, []byte("two"))
	require.NoError(t, err)

	got, err := repo.GetDocument(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)

	data, err := repo.FetchData(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}
