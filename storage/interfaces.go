package storage

import (
	"context"
	"time"

	"github.com/ticketry/ticketry/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// KnowledgeRepository provides operations for managing knowledge chunks.
type KnowledgeRepository interface {
	Repository
	// AddChunks adds one or more knowledge chunks to storage.
	// For chunks with ID=0, derives content-based IDs from the chunk text.
	// Sets InsertedAt timestamp if not already set.
	// Returns the chunks with IDs and timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.KnowledgeChunk) ([]*core.KnowledgeChunk, error)

	// UpdateChunks updates existing knowledge chunks.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.KnowledgeChunk) ([]*core.KnowledgeChunk, error)

	// DeleteChunks removes knowledge chunks by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any chunk doesn't exist.
	DeleteChunks(ctx context.Context, ids ...core.ID) error

	// GetChunk retrieves a single knowledge chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.KnowledgeChunk, error)

	// GetChunks retrieves multiple knowledge chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.KnowledgeChunk, error)

	// GetChunksBySourceDoc retrieves all chunks extracted from a source document.
	GetChunksBySourceDoc(ctx context.Context, sourceDocId string) ([]*core.KnowledgeChunk, error)

	// GetAllChunks retrieves every stored chunk, in id order.
	// Used to hydrate the in-memory index at startup.
	GetAllChunks(ctx context.Context) ([]*core.KnowledgeChunk, error)
}

// RecordRepository provides operations for managing processing records.
type RecordRepository interface {
	Repository
	// SaveRecord persists a finished processing record, overwriting any
	// previous record for the same ticket.
	SaveRecord(ctx context.Context, record *core.ProcessingRecord) error

	// GetRecord retrieves the processing record for a ticket.
	// Returns ErrNotFound if no record exists.
	GetRecord(ctx context.Context, ticketId string) (*core.ProcessingRecord, error)

	// GetRecentRecords retrieves the N most recently finished records,
	// most recent first.
	GetRecentRecords(ctx context.Context, limit int) ([]*core.ProcessingRecord, error)

	// GetRecordsByDateRange retrieves records finished within a time range.
	// Returns records where start <= finishedAt < end, oldest first.
	GetRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ProcessingRecord, error)
}
