package ai

import (
	"context"
	"errors"
)

var (
	// ErrEmbeddingUnavailable indicates the embedding capability is
	// unreachable or returned malformed output (wrong dimension,
	// non-numeric values).
	ErrEmbeddingUnavailable = errors.New("embedding capability unavailable")

	// ErrClassificationUnavailable indicates the classification
	// capability is completely unreachable.
	ErrClassificationUnavailable = errors.New("classification capability unavailable")

	// ErrGenerationUnavailable indicates the language-model capability
	// is unreachable.
	ErrGenerationUnavailable = errors.New("generation capability unavailable")
)

// IsTransient reports whether err belongs to the transient failure
// class that warrants a retry (capability outages and timeouts).
// Malformed-input failures are never transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrEmbeddingUnavailable) ||
		errors.Is(err, ErrClassificationUnavailable) ||
		errors.Is(err, ErrGenerationUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
