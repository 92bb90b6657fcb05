package badger

import (
	"context"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/phoenixvc/rooivalk-knowledge/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository on the given backend.
//
// Returns storage.ChunkRepository interface to enforce abstraction.
func NewChunkRepository(backend *Backend) (storage.ChunkRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ChunkRepository{backend: backend}, nil
}

// Close releases resources. The shared backend is closed by its owner.
func (r *ChunkRepository) Close() error {
	return nil
}

// UpsertDocument atomically replaces the chunk set and metadata for a document.
func (r *ChunkRepository) UpsertDocument(ctx context.Context, meta *core.IndexMetadata, chunks []*core.DocumentChunk) error {
	if meta == nil || meta.DocID == "" {
		return storage.ErrInvalidQuery
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Delete any chunks from a prior version of the document.
		if err := deleteChunksInTx(tx, meta.DocID); err != nil {
			return err
		}

		for _, chunk := range chunks {
			key := makeChunkKey(chunk.DocID, chunk.Ordinal)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}

		if err := tx.Set(makeMetaKey(meta.DocID), storage.MarshalMetadata(meta)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetChunks retrieves all chunks for a document in ordinal order.
func (r *ChunkRepository) GetChunks(ctx context.Context, docID string) ([]*core.DocumentChunk, error) {
	var chunks []*core.DocumentChunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(makeMetaKey(docID)); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkDocPrefix(docID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.DocumentChunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// AllChunks retrieves every stored chunk, optionally filtered by category.
func (r *ChunkRepository) AllChunks(ctx context.Context, category string) ([]*core.DocumentChunk, error) {
	var chunks []*core.DocumentChunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.DocumentChunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if category != "" && chunk.Category != category {
				continue
			}
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// FindSimilar scans all candidate chunks and ranks them by cosine similarity.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, minScore float64, limit int, category string) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.DocumentChunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}

			if category != "" && chunk.Category != category {
				continue
			}
			// Skip chunks without embeddings
			if len(chunk.Vector) == 0 {
				continue
			}

			similarity := CosineSimilarity(vector, chunk.Vector)
			if similarity >= minScore {
				results = append(results, &core.SearchResult{
					DocID:        chunk.DocID,
					ChunkID:      chunk.ChunkID,
					Title:        chunk.Title,
					SectionLabel: chunk.SectionLabel,
					Text:         chunk.Text,
					Score:        similarity,
					Source:       core.SourceVector,
				})
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Stable sort keeps insertion (key) order for equal scores, so results
	// stay deterministic.
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DeleteDocument removes all chunks and the metadata record for a document.
func (r *ChunkRepository) DeleteDocument(ctx context.Context, docID string) (int, error) {
	deleted := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(makeMetaKey(docID)); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		n, err := countChunksInTx(tx, docID)
		if err != nil {
			return err
		}
		deleted = n

		if err := deleteChunksInTx(tx, docID); err != nil {
			return err
		}
		if err := tx.Delete(makeMetaKey(docID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// deleteChunksInTx removes every chunk key for a document within a transaction.
func deleteChunksInTx(tx *badger.Txn, docID string) error {
	keys, err := chunkKeysInTx(tx, docID)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// countChunksInTx counts the chunk keys for a document within a transaction.
func countChunksInTx(tx *badger.Txn, docID string) (int, error) {
	keys, err := chunkKeysInTx(tx, docID)
	return len(keys), err
}

// chunkKeysInTx collects the chunk keys for a document within a transaction.
func chunkKeysInTx(tx *badger.Txn, docID string) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeChunkDocPrefix(docID)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys, nil
}

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||) in float64.
// Defined as 0 when either vector has zero magnitude, so it never divides
// by zero. Vectors of different lengths are compared over their common prefix.
func CosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
