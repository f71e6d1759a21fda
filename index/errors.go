package index

import "errors"

var (
	// ErrInvalidTopK is returned when a search requests a non-positive
	// result count or one above the configured maximum.
	ErrInvalidTopK = errors.New("invalid topK")

	// ErrDimensionMismatch is returned when a chunk or query vector does
	// not match the dimension of vectors already stored in the index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrMissingVector is returned when a chunk without an embedding is
	// added to the index.
	ErrMissingVector = errors.New("chunk has no embedding vector")
)
