// Copyright 2025 Ticketry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retrieve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/core"
	"github.com/ticketry/ticketry/index"
)

const (
	// DefaultTopK is the retrieval breadth when none is configured.
	DefaultTopK = 5

	// DefaultThreshold is the minimum relevance score a chunk must reach
	// to appear in the result.
	DefaultThreshold float32 = 0.60
)

// Retriever finds knowledge chunks relevant to a classified ticket.
type Retriever struct {
	index     *index.Index
	embedder  ai.Embedder
	topK      int
	threshold float32
	logger    *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithTopK sets the retrieval breadth.
// Default is DefaultTopK. Validated against the index maximum at search time.
func WithTopK(topK int) Option {
	return func(r *Retriever) error {
		if topK <= 0 {
			return fmt.Errorf("%w: %d", index.ErrInvalidTopK, topK)
		}
		r.topK = topK
		return nil
	}
}

// WithThreshold sets the minimum relevance score.
// Default is DefaultThreshold.
func WithThreshold(threshold float32) Option {
	return func(r *Retriever) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("%w: %f", ErrInvalidThreshold, threshold)
		}
		r.threshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever over the given index.
func NewRetriever(ix *index.Index, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		index:     ix,
		embedder:  embedder,
		topK:      DefaultTopK,
		threshold: DefaultThreshold,
		logger:    slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve embeds a query built from the ticket and its classification,
// then returns the chunks scoring at or above the relevance threshold,
// best first. An empty result is not an error; it signals the caller to
// answer without evidence.
func (r *Retriever) Retrieve(ctx context.Context, ticket *core.Ticket, classification *core.Classification) ([]*core.RetrievedChunk, error) {
	query := BuildQuery(ticket, classification)

	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error embedding query", "ticketId", ticket.Id, "err", err)
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := r.index.Search(embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	// matches are ordered by score, so cut at the first below threshold.
	kept := matches[:0:len(matches)]
	for _, m := range matches {
		if m.Score < r.threshold {
			break
		}
		kept = append(kept, m)
	}

	r.logger.Debug("retrieval complete",
		"ticketId", ticket.Id,
		"candidates", len(matches),
		"kept", len(kept))

	return kept, nil
}

// TopK returns the configured retrieval breadth.
func (r *Retriever) TopK() int {
	return r.topK
}

// Threshold returns the configured minimum relevance score.
func (r *Retriever) Threshold() float32 {
	return r.threshold
}
