package retrieve

import "errors"

var (
	// ErrIndexRequired is returned when a knowledge index is not provided.
	ErrIndexRequired = errors.New("knowledge index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidThreshold is returned when the relevance threshold is
	// outside [0, 1].
	ErrInvalidThreshold = errors.New("relevance threshold must be in [0, 1]")
)
