package storage

import (
	"context"

	"github.com/phoenixvc/rooivalk-knowledge/core"
)

// ChunkRepository owns the stored corpus of document chunks and their
// embedding vectors. Implementations must be thread-safe: the corpus is
// mutated only by UpsertDocument and DeleteDocument, and reads run against a
// consistent snapshot per call.
type ChunkRepository interface {
	// UpsertDocument atomically replaces the full chunk set for a document
	// and upserts its metadata record. Any existing chunks for the document
	// are deleted and the new set inserted in a single transaction, so a
	// concurrent search observes either the pre- or post-upsert state,
	// never a mix. A nil or empty chunk slice records the metadata alone.
	UpsertDocument(ctx context.Context, meta *core.IndexMetadata, chunks []*core.DocumentChunk) error

	// GetChunks retrieves all chunks for a document in ordinal order.
	// Returns ErrNotFound if the document has no metadata record.
	GetChunks(ctx context.Context, docID string) ([]*core.DocumentChunk, error)

	// AllChunks retrieves every stored chunk, optionally filtered by
	// category. An empty category matches all chunks. Order is stable:
	// documents by ID, chunks by ordinal.
	AllChunks(ctx context.Context, category string) ([]*core.DocumentChunk, error)

	// FindSimilar scans the candidate set (optionally pre-filtered by
	// category), computes cosine similarity against the query vector,
	// retains candidates with similarity >= minScore, and returns up to
	// limit results sorted descending by score. Ties are broken by chunk
	// insertion order so results stay deterministic. Chunks without a
	// stored vector are skipped.
	FindSimilar(ctx context.Context, vector []float32, minScore float64, limit int, category string) ([]*core.SearchResult, error)

	// DeleteDocument removes all chunks and the metadata record for a
	// document, returning the number of chunks removed. Returns ErrNotFound
	// if the document was never indexed.
	DeleteDocument(ctx context.Context, docID string) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// MetadataRepository provides read access to per-document index metadata.
type MetadataRepository interface {
	// GetMetadata retrieves the metadata record for a document.
	// Returns ErrNotFound if the document doesn't exist.
	GetMetadata(ctx context.Context, docID string) (*core.IndexMetadata, error)

	// AllMetadata retrieves every metadata record, ordered by document ID.
	AllMetadata(ctx context.Context) ([]*core.IndexMetadata, error)

	// Stats aggregates the metadata records into corpus-level statistics.
	// Documents with zero chunks are counted in TotalDocuments.
	Stats(ctx context.Context) (*core.IndexStats, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
