package docindex

import (
	"context"
	"testing"

	"github.com/poiesic/docindex/ai/mock"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/ingestion"
	"github.com/poiesic/docindex/storage"
	"github.com/poiesic/docindex/vectorstore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPages satisfies ingestion.PageExtractor with canned page content.
type fixedPages []core.Page

func (f fixedPages) ExtractPages(ctx context.Context, data []byte) ([]core.Page, error) {
	return f, nil
}

func openTestLibrary(t *testing.T) (*Library, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	library, err := Open(t.TempDir()+"/docs",
		WithEmbedder(mock.NewMockEmbedder()),
		WithVectorStore(store),
	)
	require.NoError(t, err)
	t.Cleanup(func() { library.Close() })

	return library, store
}

func TestLibraryAddAndListDocuments(t *testing.T) {
	library, _ := openTestLibrary(t)
	ctx := context.Background()

	record, err := library.AddDocument(ctx, "guides/intro.pdf", "intro.pdf", []byte("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "guides/intro.pdf", record.Key)
	assert.Equal(t, int64(9), record.Size)
	assert.False(t, record.UploadedAt.IsZero())

	records, err := library.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "guides/intro.pdf", records[0].Key)
}

func TestLibraryIngest(t *testing.T) {
	library, store := openTestLibrary(t)
	ctx := context.Background()

	_, err := library.AddDocument(ctx, "guides/intro.pdf", "intro.pdf", []byte("pdf bytes"))
	require.NoError(t, err)

	pages := fixedPages{
		{Text: "first page text", Number: 1},
		{Text: "second page text", Number: 2},
	}
	chunks, err := library.Ingest(ctx, "guides/intro.pdf", ingestion.WithExtractor(pages))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "first page text", chunks[0].Text)

	namespace := core.NamespaceForKey("guides/intro.pdf")
	assert.Equal(t, 2, store.Count(namespace))

	record, err := library.DocumentRepository().GetDocument(ctx, "guides/intro.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, record.PageCount)
	assert.Equal(t, 2, record.ChunkCount)
	assert.False(t, record.IngestedAt.IsZero())
}

func TestLibraryIngestMissingDocument(t *testing.T) {
	library, _ := openTestLibrary(t)

	_, err := library.Ingest(context.Background(), "absent.pdf",
		ingestion.WithExtractor(fixedPages{}))
	assert.ErrorIs(t, err, ingestion.ErrFetch)
}

func TestLibraryRemoveDocument(t *testing.T) {
	library, _ := openTestLibrary(t)
	ctx := context.Background()

	_, err := library.AddDocument(ctx, "old.pdf", "old.pdf", []byte("bytes"))
	require.NoError(t, err)

	require.NoError(t, library.RemoveDocument(ctx, "old.pdf"))

	_, err = library.DocumentRepository().GetDocument(ctx, "old.pdf")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, library.RemoveDocument(ctx, "old.pdf"), storage.ErrNotFound)
}

func TestLibraryDefaultVectorStore(t *testing.T) {
	library, err := Open(t.TempDir()+"/docs", WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	defer library.Close()

	assert.NotNil(t, library.VectorStore())
}
