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


package respond

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/core"
)

const (
	// NoEvidenceAnswer is returned without invoking the language model
	// when retrieval produced no usable chunks.
	NoEvidenceAnswer = "I could not find documentation that answers your question. " +
		"Your ticket has been forwarded to our support team, who will follow up with you directly."

	// UnavailableAnswer is the static fallback used when the language
	// model is unreachable after retries.
	UnavailableAnswer = "We received your ticket but could not prepare an automated answer right now. " +
		"A member of our support team will review it and respond as soon as possible."

	// RoutedAnswer is returned for topics handled outside the automated
	// answer flow when routing is enabled.
	RoutedAnswer = "This type of request is handled directly by our support team. " +
		"Your ticket has been routed to the right queue and someone will be in touch shortly."
)

// ragTopics are the topics the automated answer flow is trusted to
// handle from documentation. Everything else routes to a human queue
// when routing is enabled.
var ragTopics = map[core.Topic]bool{
	core.TopicHowTo:         true,
	core.TopicProduct:       true,
	core.TopicBestPractices: true,
	core.TopicAPISDK:        true,
	core.TopicSSO:           true,
	core.TopicAccountAccess: true,
}

// IsRAGTopic reports whether the automated answer flow handles the topic.
func IsRAGTopic(topic core.Topic) bool {
	return ragTopics[topic]
}

// Responder generates grounded answers for classified tickets.
type Responder struct {
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResponder creates a new responder.
func NewResponder(generator ai.Generator, opts ...Option) (*Responder, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	r := &Responder{
		generator: generator,
		logger:    slog.Default().With("component", "responder"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Respond produces an answer for the ticket grounded in the retrieved
// chunks. With no chunks it returns the no-evidence fallback without
// calling the language model. A generation failure is returned to the
// caller, which decides whether to retry or use FallbackResult.
func (r *Responder) Respond(ctx context.Context, ticket *core.Ticket, classification *core.Classification, chunks []*core.RetrievedChunk) (*core.GenerationResult, error) {
	if len(chunks) == 0 {
		r.logger.Debug("no evidence retrieved, using fallback answer", "ticketId", ticket.Id)
		return &core.GenerationResult{
			AnswerText:   NoEvidenceAnswer,
			UsedFallback: true,
		}, nil
	}

	prompt := buildAnswerPrompt(ticket, classification, chunks)

	answer, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: empty answer", ai.ErrGenerationUnavailable)
	}

	return &core.GenerationResult{
		AnswerText:    answer,
		CitedChunkIds: extractCitations(answer, chunks),
	}, nil
}

// FallbackResult is the static answer used when generation is
// unavailable after retries. Status remains generated downstream.
func FallbackResult() *core.GenerationResult {
	return &core.GenerationResult{
		AnswerText:   UnavailableAnswer,
		UsedFallback: true,
	}
}

// RoutedResult is the answer for tickets whose topic is handled outside
// the automated flow.
func RoutedResult() *core.GenerationResult {
	return &core.GenerationResult{
		AnswerText:   RoutedAnswer,
		UsedFallback: true,
	}
}
