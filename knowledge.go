// Copyright 2025 Phoenix VC
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

// Package knowledge is a hybrid retrieval engine over a local document
// corpus: documents are chunked and embedded into a Badger-backed index, and
// queries run concurrent vector and keyword retrieval merged by reciprocal
// rank fusion, optionally synthesized into a cited answer by a completion
// model.
package knowledge

import (
	"context"
	"log/slog"

	"github.com/phoenixvc/rooivalk-knowledge/ai"
	"github.com/phoenixvc/rooivalk-knowledge/ai/openai"
	"github.com/phoenixvc/rooivalk-knowledge/answer"
	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/phoenixvc/rooivalk-knowledge/ingestion"
	"github.com/phoenixvc/rooivalk-knowledge/search"
	"github.com/phoenixvc/rooivalk-knowledge/storage"
	"github.com/phoenixvc/rooivalk-knowledge/storage/badger"
)

// Engine wires storage, AI services, ingestion, search, and answer synthesis
// into the administrative surface a hosting layer calls.
type Engine struct {
	backend      *badger.Backend
	chunkRepo    storage.ChunkRepository
	metaRepo     storage.MetadataRepository
	provider     ai.Provider
	pipeline     *ingestion.Pipeline
	searcher     *search.Searcher
	orchestrator *answer.Orchestrator
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig     *ai.Config
	provider     ai.Provider
	pipelineOpts []ingestion.Option
	searchOpts   []search.Option
	answerOpts   []answer.Option
}

// WithAIConfig sets the configuration for the default OpenAI-compatible
// provider. When WithProvider is also given, only the embedding batch size
// is read from it.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing the
// default one. The engine takes ownership and closes it on Close.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithPipelineOptions forwards options to the ingestion pipeline.
func WithPipelineOptions(opts ...ingestion.Option) EngineOption {
	return func(o *engineOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// WithSearchOptions forwards options to the searcher.
func WithSearchOptions(opts ...search.Option) EngineOption {
	return func(o *engineOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithAnswerOptions forwards options to the answer orchestrator.
func WithAnswerOptions(opts ...answer.Option) EngineOption {
	return func(o *engineOptions) {
		o.answerOpts = append(o.answerOpts, opts...)
	}
}

// NewEngine opens (or creates) an index at filePath and wires up the full
// engine.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	return newEngine(filePath, false, opts...)
}

// NewMemoryEngine creates an engine backed by an in-memory index. Intended
// for tests and ephemeral corpora; nothing survives Close.
func NewMemoryEngine(opts ...EngineOption) (*Engine, error) {
	return newEngine("", true, opts...)
}

func newEngine(filePath string, inMemory bool, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	metaRepo, err := badger.NewMetadataRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	// Config-derived options come first so explicit pipeline options win.
	pipelineOpts := options.pipelineOpts
	if options.aiConfig != nil && options.aiConfig.EmbedBatchSize > 0 {
		pipelineOpts = append(
			[]ingestion.Option{ingestion.WithEmbedBatchSize(options.aiConfig.EmbedBatchSize)},
			pipelineOpts...,
		)
	}

	pipeline, err := ingestion.NewPipeline(chunkRepo, metaRepo, provider, pipelineOpts...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(chunkRepo, provider, options.searchOpts...)
	if err != nil {
		pipeline.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	orchestrator, err := answer.NewOrchestrator(searcher, provider, options.answerOpts...)
	if err != nil {
		pipeline.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:      backend,
		chunkRepo:    chunkRepo,
		metaRepo:     metaRepo,
		provider:     provider,
		pipeline:     pipeline,
		searcher:     searcher,
		orchestrator: orchestrator,
		logger:       slog.Default().With("component", "engine"),
	}, nil
}

// IndexDocuments indexes a batch of documents. Per-document failures are
// collected in the report rather than aborting the batch.
func (e *Engine) IndexDocuments(ctx context.Context, docs []*core.Document) (*core.IndexReport, error) {
	return e.pipeline.IndexDocuments(ctx, docs)
}

// ReindexDocument reindexes one document, skipping the work if its content
// fingerprint is unchanged. Returns the number of chunks created and whether
// the document was skipped.
func (e *Engine) ReindexDocument(ctx context.Context, doc *core.Document) (int, bool, error) {
	return e.pipeline.Reindex(ctx, doc)
}

// DeleteFromIndex removes a document's chunks and metadata, returning the
// number of chunks deleted. Returns storage.ErrNotFound for an unknown
// document.
func (e *Engine) DeleteFromIndex(ctx context.Context, docID string) (int, error) {
	return e.chunkRepo.DeleteDocument(ctx, docID)
}

// Stats reports corpus-level statistics.
func (e *Engine) Stats(ctx context.Context) (*core.IndexStats, error) {
	return e.metaRepo.Stats(ctx)
}

// Search runs a hybrid query over the corpus.
func (e *Engine) Search(ctx context.Context, query string, opts search.SearchOptions) ([]*core.HybridResult, error) {
	return e.searcher.Search(ctx, query, opts)
}

// SearchWithMonitor runs a hybrid query and reports each retrieval stage to
// the monitor. A nil monitor behaves like Search.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, opts search.SearchOptions, monitor search.SearchMonitor) ([]*core.HybridResult, error) {
	return e.searcher.SearchWithMonitor(ctx, query, opts, monitor)
}

// Ask answers a question from the corpus with cited sources.
func (e *Engine) Ask(ctx context.Context, question string, opts answer.AskOptions) (*answer.Answer, error) {
	return e.orchestrator.Ask(ctx, question, opts)
}

// ReembedAll regenerates every stored embedding. Used after switching
// embedding models.
func (e *Engine) ReembedAll(ctx context.Context) (int, error) {
	return e.pipeline.ReembedAll(ctx)
}

// ChunkRepository exposes the underlying chunk store.
func (e *Engine) ChunkRepository() storage.ChunkRepository {
	return e.chunkRepo
}

// MetadataRepository exposes the underlying metadata store.
func (e *Engine) MetadataRepository() storage.MetadataRepository {
	return e.metaRepo
}

// Close releases the worker pools, the AI provider, and the storage backend.
func (e *Engine) Close() error {
	e.pipeline.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
