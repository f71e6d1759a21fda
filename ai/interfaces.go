package ai

import (
	"context"

	"github.com/ticketry/ticketry/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has the dimension declared by the provider's
	// configuration. Returns ErrEmbeddingUnavailable (wrapped) when the
	// underlying capability is unreachable or returns malformed output.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Classifier assigns topic, sentiment and priority labels to a ticket.
// Implementations must produce exactly one label per field even for
// ambiguous input, coercing out-of-enum model output to the nearest
// valid label with lowered confidence. Only a completely unreachable
// capability surfaces ErrClassificationUnavailable.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, ticket *core.Ticket) (*core.Classification, error)
}

// Prompt is a structured request to the language-model capability.
type Prompt struct {
	System string
	User   string
}

// Generator produces a text completion for a prompt.
// Returns ErrGenerationUnavailable (wrapped) when the capability is
// unreachable. Implementations must be thread-safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Classifier returns the ticket classification service.
	Classifier() Classifier

	// Generator returns the answer generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
