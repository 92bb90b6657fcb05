package badger

import (
	"context"
	"testing"
	"time"

	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	chunkRepo, metaRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	t.Run("empty corpus", func(t *testing.T) {
		stats, err := metaRepo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalDocuments)
		assert.Equal(t, 0, stats.TotalChunks)
		assert.Empty(t, stats.Categories)
	})

	// Three documents with 5, 2, and 0 chunks. The zero-chunk document is
	// still recorded.
	counts := map[string]int{"doc-5": 5, "doc-2": 2, "doc-0": 0}
	for docID, n := range counts {
		texts := make([]string, n)
		for i := range texts {
			texts[i] = "text"
		}
		meta, chunks := makeTestDoc(docID, texts, nil)
		meta.ChunkCount = n
		require.NoError(t, chunkRepo.UpsertDocument(ctx, meta, chunks))
	}

	t.Run("after indexing", func(t *testing.T) {
		stats, err := metaRepo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalDocuments)
		assert.Equal(t, 7, stats.TotalChunks)
		assert.Equal(t, 3, stats.Categories["technical"])
	})
}

func TestAllMetadata(t *testing.T) {
	chunkRepo, metaRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	for _, docID := range []string{"b-doc", "a-doc"} {
		meta := &core.IndexMetadata{
			DocID:     docID,
			Title:     docID,
			IndexedAt: time.Now().UTC(),
		}
		require.NoError(t, chunkRepo.UpsertDocument(ctx, meta, nil))
	}

	records, err := metaRepo.AllMetadata(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Ordered by document ID.
	assert.Equal(t, "a-doc", records[0].DocID)
	assert.Equal(t, "b-doc", records[1].DocID)
}

func TestGetMetadata_RoundTrip(t *testing.T) {
	chunkRepo, metaRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	meta := &core.IndexMetadata{
		DocID:       "doc-meta",
		Title:       "Metadata Test",
		Category:    "business",
		Tags:        []string{"finance"},
		ChunkCount:  4,
		ContentHash: core.FingerprintFromContent("body"),
		IndexedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, chunkRepo.UpsertDocument(ctx, meta, nil))

	got, err := metaRepo.GetMetadata(ctx, "doc-meta")
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}
