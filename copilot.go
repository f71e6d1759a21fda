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


package ticketry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/ai/openai"
	"github.com/ticketry/ticketry/core"
	"github.com/ticketry/ticketry/index"
	"github.com/ticketry/ticketry/pipeline"
	"github.com/ticketry/ticketry/respond"
	"github.com/ticketry/ticketry/retrieve"
	"github.com/ticketry/ticketry/storage"
	"github.com/ticketry/ticketry/storage/badger"
)

// Copilot is the top-level entry point: a persistent knowledge base,
// an in-memory vector index hydrated from it, and the AI services
// needed to classify tickets and answer them.
type Copilot struct {
	backend       *badger.Backend
	knowledgeRepo storage.KnowledgeRepository
	recordRepo    storage.RecordRepository
	provider      ai.Provider
	classifier    ai.Classifier
	index         *index.Index
	logger        *slog.Logger
}

// CopilotOption configures a Copilot.
type CopilotOption func(*copilotOptions)

type copilotOptions struct {
	aiConfig   *ai.Config
	provider   ai.Provider
	classifier ai.Classifier
	inMemory   bool
}

// WithAIConfig sets the AI service configuration.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) CopilotOption {
	return func(o *copilotOptions) {
		o.aiConfig = config
	}
}

// WithProvider replaces the default OpenAI-compatible provider.
// Useful for offline operation and tests.
func WithProvider(provider ai.Provider) CopilotOption {
	return func(o *copilotOptions) {
		o.provider = provider
	}
}

// WithClassifier replaces the provider's classifier in pipelines built
// by NewPipeline. Used for offline rule-based classification.
func WithClassifier(classifier ai.Classifier) CopilotOption {
	return func(o *copilotOptions) {
		o.classifier = classifier
	}
}

// WithInMemoryStorage keeps the knowledge base in memory instead of on disk.
func WithInMemoryStorage() CopilotOption {
	return func(o *copilotOptions) {
		o.inMemory = true
	}
}

// NewCopilot opens the knowledge base at filePath and hydrates the
// vector index from the persisted chunks.
func NewCopilot(filePath string, opts ...CopilotOption) (*Copilot, error) {
	options := &copilotOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	knowledgeRepo, err := badger.NewKnowledgeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	recordRepo, err := badger.NewRecordRepository(backend)
	if err != nil {
		knowledgeRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			recordRepo.Close()
			knowledgeRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	classifier := options.classifier
	if classifier == nil {
		classifier = provider.Classifier()
	}

	c := &Copilot{
		backend:       backend,
		knowledgeRepo: knowledgeRepo,
		recordRepo:    recordRepo,
		provider:      provider,
		classifier:    classifier,
		index:         index.NewIndex(),
		logger:        slog.Default().With("component", "copilot"),
	}

	if err := c.hydrateIndex(context.Background()); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

// Close releases the AI provider, repositories and storage backend.
func (c *Copilot) Close() error {
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	if err := c.recordRepo.Close(); err != nil {
		c.logger.Error("error closing record repository", "err", err)
		return err
	}
	if err := c.knowledgeRepo.Close(); err != nil {
		c.logger.Error("error closing knowledge repository", "err", err)
		return err
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// KnowledgeRepository returns the persistent chunk store.
func (c *Copilot) KnowledgeRepository() storage.KnowledgeRepository {
	return c.knowledgeRepo
}

// RecordRepository returns the processing record store.
func (c *Copilot) RecordRepository() storage.RecordRepository {
	return c.recordRepo
}

// Index returns the in-memory vector index.
func (c *Copilot) Index() *index.Index {
	return c.index
}

// IngestChunks embeds chunks that lack vectors, persists them and adds
// them to the index. Returns the chunks with ids, vectors and
// timestamps populated.
func (c *Copilot) IngestChunks(ctx context.Context, chunks ...*core.KnowledgeChunk) ([]*core.KnowledgeChunk, error) {
	var missing []*core.KnowledgeChunk
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return nil, err
		}
		if len(chunk.Vector) == 0 {
			missing = append(missing, chunk)
		}
	}

	if len(missing) > 0 {
		texts := make([]string, len(missing))
		for i, chunk := range missing {
			texts[i] = chunk.Text
		}
		vectors, err := c.provider.Embedder().EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks: %w", err)
		}
		for i, chunk := range missing {
			chunk.Vector = vectors[i]
		}
	}

	added, err := c.knowledgeRepo.AddChunks(ctx, chunks...)
	if err != nil {
		return nil, err
	}

	for _, chunk := range added {
		if err := c.index.Add(chunk); err != nil {
			return nil, fmt.Errorf("indexing chunk %d: %w", chunk.Id, err)
		}
	}

	c.logger.Info("chunks ingested", "count", len(added), "embedded", len(missing))
	return added, nil
}

// NewPipeline constructs a ticket processing pipeline over the copilot's
// index, provider and record store.
func (c *Copilot) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	retriever, err := c.NewRetriever()
	if err != nil {
		return nil, err
	}

	responder, err := respond.NewResponder(c.provider.Generator())
	if err != nil {
		return nil, err
	}

	opts = append([]pipeline.Option{pipeline.WithRecordRepository(c.recordRepo)}, opts...)
	return pipeline.NewPipeline(c.classifier, retriever, responder, opts...)
}

// NewRetriever constructs a retriever over the copilot's index.
func (c *Copilot) NewRetriever(opts ...retrieve.Option) (*retrieve.Retriever, error) {
	return retrieve.NewRetriever(c.index, c.provider.Embedder(), opts...)
}

// hydrateIndex loads every persisted chunk with a vector into the index.
func (c *Copilot) hydrateIndex(ctx context.Context) error {
	chunks, err := c.knowledgeRepo.GetAllChunks(ctx)
	if err != nil {
		return err
	}

	indexed := 0
	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			c.logger.Warn("skipping chunk without embedding", "chunkId", chunk.Id)
			continue
		}
		if err := c.index.Add(chunk); err != nil {
			return fmt.Errorf("indexing chunk %d: %w", chunk.Id, err)
		}
		indexed++
	}

	if indexed > 0 {
		c.logger.Info("knowledge index hydrated", "chunks", indexed)
	}
	return nil
}
