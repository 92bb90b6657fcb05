package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/phoenixvc/rooivalk-knowledge/ai"
	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/phoenixvc/rooivalk-knowledge/storage"
)

// Pipeline orchestrates document indexing: frontmatter parsing, chunking,
// batched embedding, and storage. Documents are processed one at a time;
// embedding batches for a single document run concurrently on a worker pool.
type Pipeline struct {
	chunkRepository storage.ChunkRepository
	metaRepository  storage.MetadataRepository
	embedder        ai.Embedder
	chunker         *Chunker
	embeddingPool   *ants.Pool
	batchSize       int
	maxAttempts     int
	baseDelay       time.Duration
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithChunkPolicy sets the chunking policy.
// Default is DefaultChunkPolicy().
func WithChunkPolicy(policy ChunkPolicy) Option {
	return func(p *Pipeline) error {
		p.chunker = NewChunker(policy)
		return nil
	}
}

// WithEmbedBatchSize sets the maximum number of texts per embedding call.
// Default is 32.
func WithEmbedBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry configures retry behavior for embedding calls.
// Defaults are 3 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
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
		p.logger = logger.With("component", "ingestion")
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	chunkRepository storage.ChunkRepository,
	metaRepository storage.MetadataRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if metaRepository == nil {
		return nil, ErrMetadataRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunkRepository: chunkRepository,
		metaRepository:  metaRepository,
		embedder:        provider.Embedder(),
		chunker:         NewChunker(DefaultChunkPolicy()),
		embeddingPool:   pool,
		batchSize:       32,
		maxAttempts:     3,
		baseDelay:       500 * time.Millisecond,
		logger:          slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IndexDocuments indexes a batch of documents. A failing document is recorded
// in the report and does not abort the batch; only context cancellation stops
// the run early.
func (p *Pipeline) IndexDocuments(ctx context.Context, docs []*core.Document) (*core.IndexReport, error) {
	report := &core.IndexReport{}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		chunks, err := p.IndexDocument(ctx, doc)
		if err != nil {
			p.logger.Error("failed to index document", "docID", doc.ID, "err", err)
			report.Failed++
			report.Errors = append(report.Errors, &core.IndexError{DocID: doc.ID, Err: err})
			continue
		}

		report.Indexed++
		report.TotalChunks += chunks
	}

	p.logger.Info("batch indexing complete",
		"indexed", report.Indexed, "failed", report.Failed, "chunks", report.TotalChunks)
	return report, nil
}

// IndexDocument chunks, embeds, and stores a single document, replacing any
// previously indexed content. It returns the number of chunks created. A
// document with an empty body is recorded with zero chunks rather than
// dropped.
func (p *Pipeline) IndexDocument(ctx context.Context, doc *core.Document) (int, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return 0, err
	}

	resolved, body := p.resolveMetadata(doc)
	chunks := p.chunker.ChunkDocument(&core.Document{
		ID:       resolved.DocID,
		Title:    resolved.Title,
		Content:  body,
		Category: resolved.Category,
		Tags:     resolved.Tags,
	})
	if len(chunks) == 0 {
		p.logger.Warn("document produced no chunks", "docID", doc.ID)
	}

	if err := p.embedChunks(ctx, chunks); err != nil {
		return 0, err
	}

	resolved.ChunkCount = len(chunks)
	if err := p.chunkRepository.UpsertDocument(ctx, resolved, chunks); err != nil {
		return 0, err
	}

	p.logger.Debug("indexed document", "docID", doc.ID, "chunks", len(chunks))
	return len(chunks), nil
}

// Reindex indexes a document unless its content fingerprint matches the
// stored one, in which case the work is skipped. Returns the number of chunks
// created and whether the document was skipped.
func (p *Pipeline) Reindex(ctx context.Context, doc *core.Document) (int, bool, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return 0, false, err
	}

	fingerprint := core.FingerprintFromContent(doc.Content)
	existing, err := p.metaRepository.GetMetadata(ctx, doc.ID)
	if err == nil && existing.ContentHash == fingerprint {
		p.logger.Debug("document unchanged, skipping reindex", "docID", doc.ID)
		return 0, true, nil
	}

	chunks, err := p.IndexDocument(ctx, doc)
	return chunks, false, err
}

// ReembedAll regenerates embeddings for every stored chunk, document by
// document. Used after an embedding model change. Returns the number of
// chunks re-embedded.
func (p *Pipeline) ReembedAll(ctx context.Context) (int, error) {
	metas, err := p.metaRepository.AllMetadata(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, meta := range metas {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if meta.ChunkCount == 0 {
			continue
		}

		chunks, err := p.chunkRepository.GetChunks(ctx, meta.DocID)
		if err != nil {
			return total, err
		}

		if err := p.embedChunks(ctx, chunks); err != nil {
			return total, err
		}

		if err := p.chunkRepository.UpsertDocument(ctx, meta, chunks); err != nil {
			return total, err
		}
		total += len(chunks)
		p.logger.Debug("re-embedded document", "docID", meta.DocID, "chunks", len(chunks))
	}

	p.logger.Info("re-embedding complete", "documents", len(metas), "chunks", total)
	return total, nil
}

// Release releases the embedding worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}

// resolveMetadata parses optional frontmatter from the document body and
// overlays it onto the caller-supplied metadata. Malformed frontmatter is
// logged and the caller-supplied values stand.
func (p *Pipeline) resolveMetadata(doc *core.Document) (*core.IndexMetadata, string) {
	meta := &core.IndexMetadata{
		DocID:       doc.ID,
		Title:       doc.Title,
		Category:    doc.Category,
		Tags:        doc.Tags,
		ContentHash: core.FingerprintFromContent(doc.Content),
		IndexedAt:   time.Now().UTC(),
	}

	fm, body, err := ParseFrontmatter(doc.Content)
	if err != nil {
		p.logger.Warn("malformed frontmatter, using caller-supplied metadata", "docID", doc.ID, "err", err)
		return meta, doc.Content
	}

	if fm.Title != "" {
		meta.Title = fm.Title
	}
	if fm.Category != "" {
		meta.Category = fm.Category
	}
	if len(fm.Tags) > 0 {
		meta.Tags = fm.Tags
	}
	return meta, body
}

// embedChunks fills the Vector field of each chunk, submitting fixed-size
// batches to the worker pool. Embedding calls are retried with backoff;
// vectors are unit-normalized before storage.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []*core.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	batches := (len(chunks) + p.batchSize - 1) / p.batchSize
	errCh := make(chan error, batches)
	var wg sync.WaitGroup

	for start := 0; start < len(chunks); start += p.batchSize {
		batch := chunks[start:min(start+p.batchSize, len(chunks))]

		wg.Add(1)
		submitErr := p.embeddingPool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Text
			}

			var vectors [][]float32
			err := RetryWithBackoff(ctx, func() error {
				var embedErr error
				vectors, embedErr = p.embedder.EmbedTexts(ctx, texts)
				return embedErr
			}, p.maxAttempts, p.baseDelay)
			if err != nil {
				errCh <- err
				return
			}
			if len(vectors) != len(batch) {
				errCh <- ErrEmbeddingMismatch
				return
			}

			for i, chunk := range batch {
				chunk.Vector = NormalizeVector(vectors[i])
			}
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return submitErr
		}
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
