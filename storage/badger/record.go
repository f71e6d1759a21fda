package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ticketry/ticketry/core"
	"github.com/ticketry/ticketry/storage"
)

// RecordRepository implements storage.RecordRepository for BadgerDB.
type RecordRepository struct {
	backend *Backend
}

var _ storage.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(backend *Backend) (*RecordRepository, error) {
	return &RecordRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *RecordRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RecordRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveRecord persists a finished processing record, keyed by ticket id.
// Overwrites any previous record for the same ticket and refreshes the
// finished-at index.
func (r *RecordRepository) SaveRecord(ctx context.Context, record *core.ProcessingRecord) error {
	if record == nil || record.Ticket == nil || record.Ticket.Id == "" {
		return storage.ErrInvalidQuery
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(record.Ticket.Id)

		// Drop the previous date index entry on overwrite.
		old, err := r.readRecord(tx, key)
		if err != nil {
			return err
		}
		if old != nil {
			if err := tx.Delete(makeRecordDateKey(finishedAt(old), old.Ticket.Id)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalProcessingRecord(record)); err != nil {
			return err
		}

		dateKey := makeRecordDateKey(finishedAt(record), record.Ticket.Id)
		if err := tx.Set(dateKey, []byte(record.Ticket.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetRecord retrieves the processing record for a ticket.
func (r *RecordRepository) GetRecord(ctx context.Context, ticketId string) (*core.ProcessingRecord, error) {
	var result *core.ProcessingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readRecord(tx, makeRecordKey(ticketId))
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

// GetRecentRecords retrieves the N most recently finished records.
func (r *RecordRepository) GetRecentRecords(ctx context.Context, limit int) ([]*core.ProcessingRecord, error) {
	var results []*core.ProcessingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible date key, then walk backwards.
		startKey := makePartialRecordDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(recordDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var ticketId string
			if err := iter.Item().Value(func(val []byte) error {
				ticketId = string(val)
				return nil
			}); err != nil {
				return err
			}

			record, err := r.readRecord(tx, makeRecordKey(ticketId))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecordsByDateRange retrieves records finished within a time range.
func (r *RecordRepository) GetRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ProcessingRecord, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.ProcessingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialRecordDateKey(start)
		endKey := makePartialRecordDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			var ticketId string
			if err := iter.Item().Value(func(val []byte) error {
				ticketId = string(val)
				return nil
			}); err != nil {
				return err
			}

			record, err := r.readRecord(tx, makeRecordKey(ticketId))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// readRecord reads a processing record from the transaction.
func (r *RecordRepository) readRecord(tx *badger.Txn, key []byte) (*core.ProcessingRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ProcessingRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalProcessingRecord(val)
		return unmarshalErr
	})
	return record, err
}

// finishedAt is the time of the record's last transition, falling back
// to now for records with no transitions.
func finishedAt(record *core.ProcessingRecord) time.Time {
	if len(record.Transitions) == 0 {
		return time.Now().UTC()
	}
	return record.Transitions[len(record.Transitions)-1].At
}
