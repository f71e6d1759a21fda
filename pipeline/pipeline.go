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


package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/core"
	"github.com/ticketry/ticketry/respond"
	"github.com/ticketry/ticketry/retrieve"
	"github.com/ticketry/ticketry/storage"
)

// Pipeline orchestrates ticket processing through classification,
// retrieval and answer generation. Each ticket runs as an independent
// pipeline instance; the knowledge index is the only shared resource.
type Pipeline struct {
	classifier ai.Classifier
	retriever  *retrieve.Retriever
	responder  *respond.Responder
	records    storage.RecordRepository
	pool       *ants.Pool
	cfg        Config
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithConfig replaces the default processing policy.
func WithConfig(cfg Config) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.PoolSize == 0 {
			cfg.PoolSize = DefaultConfig().PoolSize
		}
		p.cfg = cfg
		return nil
	}
}

// WithRecordRepository enables persistence of finished records.
// Persistence failures are logged, never surfaced to the ticket flow.
func WithRecordRepository(records storage.RecordRepository) Option {
	return func(p *Pipeline) error {
		p.records = records
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ticket processing pipeline.
func NewPipeline(
	classifier ai.Classifier,
	retriever *retrieve.Retriever,
	responder *respond.Responder,
	opts ...Option,
) (*Pipeline, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if responder == nil {
		return nil, ErrResponderRequired
	}

	p := &Pipeline{
		classifier: classifier,
		retriever:  retriever,
		responder:  responder,
		cfg:        DefaultConfig(),
		logger:     slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(p.cfg.PoolSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// Process runs one ticket through the full pipeline. It always returns
// a ProcessingRecord, never a bare error: capability outages degrade the
// record, and only malformed tickets or cancellation fail it terminally.
// Tickets without an id are assigned one.
func (p *Pipeline) Process(ctx context.Context, ticket *core.Ticket) *core.ProcessingRecord {
	if ticket != nil && ticket.Id == "" {
		ticket.Id = uuid.NewString()
	}

	record := core.NewProcessingRecord(ticket)

	if err := core.ValidateTicket(ticket); err != nil {
		p.logger.Warn("rejecting malformed ticket", "err", err)
		record.Fail(core.FailureMalformedTicket)
		return p.finish(record)
	}

	// Stage 1: classification. An unreachable classifier degrades to
	// unknown labels at zero confidence rather than failing the ticket.
	cls, err := p.classifyStage(ctx, ticket)
	if err != nil {
		if p.cancelled(ctx, err) {
			record.Fail(core.FailureCancelled)
			return p.finish(record)
		}
		p.logger.Warn("classification unavailable, continuing with unknown labels",
			"ticketId", ticket.Id, "err", err)
		cls = &core.Classification{}
	}
	record.Classification = cls
	p.advance(record, core.StatusClassified)

	// Stage 2: retrieval. An embedding outage degrades to no evidence.
	chunks, err := p.retrieveStage(ctx, ticket, cls)
	if err != nil {
		if p.cancelled(ctx, err) {
			record.Fail(core.FailureCancelled)
			return p.finish(record)
		}
		p.logger.Warn("retrieval unavailable, continuing without evidence",
			"ticketId", ticket.Id, "err", err)
		chunks = nil
	}
	record.Retrieval = chunks
	p.advance(record, core.StatusRetrieved)

	// Stage 3: generation. Topics outside the automated flow get a
	// routing message when routing is enabled; a generator outage falls
	// back to a static answer. Either way the record finishes generated.
	var result *core.GenerationResult
	if p.cfg.RouteNonRAGTopics && !respond.IsRAGTopic(cls.Topic) {
		result = respond.RoutedResult()
	} else {
		result, err = p.generateStage(ctx, ticket, cls, chunks)
		if err != nil {
			if p.cancelled(ctx, err) {
				record.Fail(core.FailureCancelled)
				return p.finish(record)
			}
			p.logger.Warn("generation unavailable, using static fallback",
				"ticketId", ticket.Id, "err", err)
			result = respond.FallbackResult()
		}
	}
	record.Generation = result
	p.advance(record, core.StatusGenerated)

	record.Escalate = p.shouldEscalate(record)

	p.logger.Info("ticket processed",
		"ticketId", ticket.Id,
		"topic", cls.Topic.String(),
		"priority", cls.Priority.String(),
		"evidence", len(chunks),
		"usedFallback", result.UsedFallback,
		"escalate", record.Escalate)

	return p.finish(record)
}

// ProcessAll processes tickets concurrently on the worker pool and
// returns records in input order.
func (p *Pipeline) ProcessAll(ctx context.Context, tickets []*core.Ticket) []*core.ProcessingRecord {
	records := make([]*core.ProcessingRecord, len(tickets))

	var wg sync.WaitGroup
	for i, ticket := range tickets {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			records[i] = p.Process(ctx, ticket)
		})
		if err != nil {
			// Pool rejected the task (released or overloaded).
			record := core.NewProcessingRecord(ticket)
			record.Fail(core.FailureCancelled)
			records[i] = record
			wg.Done()
		}
	}
	wg.Wait()

	return records
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func (p *Pipeline) classifyStage(ctx context.Context, ticket *core.Ticket) (*core.Classification, error) {
	var cls *core.Classification
	err := RetryWithBackoff(ctx, func() error {
		stageCtx, cancel := context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
		var err error
		cls, err = p.classifier.Classify(stageCtx, ticket)
		return err
	}, p.cfg.MaxRetries+1, p.cfg.RetryBaseDelay)
	return cls, err
}

func (p *Pipeline) retrieveStage(ctx context.Context, ticket *core.Ticket, cls *core.Classification) ([]*core.RetrievedChunk, error) {
	var chunks []*core.RetrievedChunk
	err := RetryWithBackoff(ctx, func() error {
		stageCtx, cancel := context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
		var err error
		chunks, err = p.retriever.Retrieve(stageCtx, ticket, cls)
		return err
	}, p.cfg.MaxRetries+1, p.cfg.RetryBaseDelay)
	return chunks, err
}

func (p *Pipeline) generateStage(ctx context.Context, ticket *core.Ticket, cls *core.Classification, chunks []*core.RetrievedChunk) (*core.GenerationResult, error) {
	var result *core.GenerationResult
	err := RetryWithBackoff(ctx, func() error {
		stageCtx, cancel := context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
		var err error
		result, err = p.responder.Respond(stageCtx, ticket, cls, chunks)
		return err
	}, p.cfg.MaxRetries+1, p.cfg.RetryBaseDelay)
	return result, err
}

// cancelled distinguishes an externally cancelled run from an ordinary
// stage failure. Per-attempt timeouts never cancel the run itself.
func (p *Pipeline) cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}

func (p *Pipeline) advance(record *core.ProcessingRecord, next core.Status) {
	if err := record.Advance(next); err != nil {
		p.logger.Error("illegal status transition", "to", next.String(), "err", err)
	}
}

// shouldEscalate applies the review policy to a finished record.
func (p *Pipeline) shouldEscalate(record *core.ProcessingRecord) bool {
	if record.Classification == nil ||
		record.Classification.TopicConfidence < p.cfg.MinTopicConfidence {
		return true
	}
	if record.Generation != nil && record.Generation.UsedFallback {
		return true
	}
	if len(record.Retrieval) == 0 {
		return true
	}
	return record.Retrieval[0].Score < p.cfg.MinEvidenceScore
}

// finish hands the record off, persisting it first when a repository is
// configured. Persistence runs detached from the request context so a
// cancelled run still leaves an audit trail.
func (p *Pipeline) finish(record *core.ProcessingRecord) *core.ProcessingRecord {
	if p.records != nil {
		if err := p.records.SaveRecord(context.Background(), record); err != nil {
			ticketId := ""
			if record.Ticket != nil {
				ticketId = record.Ticket.Id
			}
			p.logger.Error("error persisting processing record", "ticketId", ticketId, "err", err)
		}
	}
	return record
}
