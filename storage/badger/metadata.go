package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/phoenixvc/rooivalk-knowledge/storage"
)

// MetadataRepository implements storage.MetadataRepository for BadgerDB.
// Metadata records are written by ChunkRepository.UpsertDocument; this
// repository is the read side.
type MetadataRepository struct {
	backend *Backend
}

var _ storage.MetadataRepository = (*MetadataRepository)(nil)

// NewMetadataRepository creates a new MetadataRepository on the given backend.
//
// Returns storage.MetadataRepository interface to enforce abstraction.
func NewMetadataRepository(backend *Backend) (storage.MetadataRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &MetadataRepository{backend: backend}, nil
}

// Close releases resources. The shared backend is closed by its owner.
func (r *MetadataRepository) Close() error {
	return nil
}

// GetMetadata retrieves the metadata record for a document.
func (r *MetadataRepository) GetMetadata(ctx context.Context, docID string) (*core.IndexMetadata, error) {
	var meta *core.IndexMetadata

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMetaKey(docID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			meta, err = storage.UnmarshalMetadata(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return meta, nil
}

// AllMetadata retrieves every metadata record, ordered by document ID.
func (r *MetadataRepository) AllMetadata(ctx context.Context) ([]*core.IndexMetadata, error) {
	var records []*core.IndexMetadata

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeMetaScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var meta *core.IndexMetadata
			err := iter.Item().Value(func(val []byte) error {
				var err error
				meta, err = storage.UnmarshalMetadata(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, meta)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// Stats aggregates metadata records into corpus-level statistics.
// Documents that produced zero chunks are still counted.
func (r *MetadataRepository) Stats(ctx context.Context) (*core.IndexStats, error) {
	records, err := r.AllMetadata(ctx)
	if err != nil {
		return nil, err
	}

	stats := &core.IndexStats{
		Categories: make(map[string]int),
	}
	for _, meta := range records {
		stats.TotalDocuments++
		stats.TotalChunks += meta.ChunkCount
		if meta.Category != "" {
			stats.Categories[meta.Category]++
		}
	}
	return stats, nil
}
