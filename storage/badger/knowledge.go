package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ticketry/ticketry/core"
	"github.com/ticketry/ticketry/storage"
)

// KnowledgeRepository implements storage.KnowledgeRepository for BadgerDB.
type KnowledgeRepository struct {
	backend *Backend
}

var _ storage.KnowledgeRepository = (*KnowledgeRepository)(nil)

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(backend *Backend) (*KnowledgeRepository, error) {
	return &KnowledgeRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *KnowledgeRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *KnowledgeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChunks adds one or more knowledge chunks to storage.
func (r *KnowledgeRepository) AddChunks(ctx context.Context, chunks ...*core.KnowledgeChunk) ([]*core.KnowledgeChunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if err := core.ValidateChunk(chunk); err != nil {
				return err
			}

			// Content-based IDs keep re-ingested passages stable.
			if chunk.Id == 0 {
				chunk.Id = core.IDFromContent(chunk.Text)
			}
			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = time.Now().UTC()
			}

			key := makeChunkKey(chunk.Id)
			if err := tx.Set(key, storage.MarshalKnowledgeChunk(chunk)); err != nil {
				return err
			}

			if chunk.SourceDocId != "" {
				sourceKey := makeChunkSourceKey(chunk.SourceDocId, chunk.Id)
				if err := tx.Set(sourceKey, storage.MarshalID(chunk.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// UpdateChunks updates existing knowledge chunks.
func (r *KnowledgeRepository) UpdateChunks(ctx context.Context, chunks ...*core.KnowledgeChunk) ([]*core.KnowledgeChunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeChunkKey(chunk.Id)

			old, err := r.readChunk(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if err := tx.Set(key, storage.MarshalKnowledgeChunk(chunk)); err != nil {
				return err
			}

			// Move the source index entry if the source document changed.
			if old.SourceDocId != chunk.SourceDocId {
				if old.SourceDocId != "" {
					if err := tx.Delete(makeChunkSourceKey(old.SourceDocId, old.Id)); err != nil {
						return err
					}
				}
				if chunk.SourceDocId != "" {
					sourceKey := makeChunkSourceKey(chunk.SourceDocId, chunk.Id)
					if err := tx.Set(sourceKey, storage.MarshalID(chunk.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// DeleteChunks removes knowledge chunks by their IDs.
func (r *KnowledgeRepository) DeleteChunks(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkKey(id)

			chunk, err := r.readChunk(tx, key)
			if err != nil {
				return err
			}
			if chunk == nil {
				return storage.ErrNotFound
			}

			if chunk.SourceDocId != "" {
				if err := tx.Delete(makeChunkSourceKey(chunk.SourceDocId, chunk.Id)); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunk retrieves a single knowledge chunk by ID.
func (r *KnowledgeRepository) GetChunk(ctx context.Context, id core.ID) (*core.KnowledgeChunk, error) {
	var result *core.KnowledgeChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readChunk(tx, makeChunkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunks retrieves multiple knowledge chunks by their IDs.
func (r *KnowledgeRepository) GetChunks(ctx context.Context, ids ...core.ID) ([]*core.KnowledgeChunk, error) {
	var result []*core.KnowledgeChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			chunk, err := r.readChunk(tx, makeChunkKey(id))
			if err != nil {
				return err
			}
			if chunk != nil {
				result = append(result, chunk)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetChunksBySourceDoc retrieves all chunks extracted from a source document.
func (r *KnowledgeRepository) GetChunksBySourceDoc(ctx context.Context, sourceDocId string) ([]*core.KnowledgeChunk, error) {
	var results []*core.KnowledgeChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChunkSourceKey(sourceDocId)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var chunkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			chunk, err := r.readChunk(tx, makeChunkKey(chunkID))
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetAllChunks retrieves every stored chunk, in id order.
func (r *KnowledgeRepository) GetAllChunks(ctx context.Context) ([]*core.KnowledgeChunk, error) {
	var results []*core.KnowledgeChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.KnowledgeChunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalKnowledgeChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)

	return results, err
}

// readChunk reads a knowledge chunk from the transaction.
func (r *KnowledgeRepository) readChunk(tx *badger.Txn, key []byte) (*core.KnowledgeChunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.KnowledgeChunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalKnowledgeChunk(val)
		return unmarshalErr
	})
	return chunk, err
}
