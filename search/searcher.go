package search

import (
	"context"
	"log/slog"

	"github.com/phoenixvc/rooivalk-knowledge/ai"
	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/phoenixvc/rooivalk-knowledge/storage"
	"golang.org/x/sync/errgroup"
)

// DefaultTopK is the result count used when SearchOptions.TopK is unset.
const DefaultTopK = 5

// candidateFloor is the minimum number of candidates each leg retrieves
// before fusion, so dedup and fusion have enough material to work with even
// for small TopK values.
const candidateFloor = 15

// SearchOptions controls a single search call.
type SearchOptions struct {
	// TopK is the maximum number of unique documents returned.
	// Defaults to DefaultTopK.
	TopK int

	// Category restricts both retrieval legs to one category.
	// Empty matches all.
	Category string

	// MinScore drops results whose fused score falls below it. Applied
	// after fusion, never to the individual legs. RRF scores are small
	// (a rank-1 hit in both legs with default weights scores ~0.016 before
	// bonuses), so thresholds should be chosen accordingly.
	MinScore float64

	// Weights overrides the adaptive weight selection when non-nil.
	Weights *Weights
}

// Searcher runs hybrid retrieval: a cosine-similarity leg and a keyword leg
// execute concurrently over the stored corpus, and their rankings are merged
// by reciprocal rank fusion.
type Searcher struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	strategy        WeightStrategy
	rrfConstant     int
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "search")
		return nil
	}
}

// WithWeightStrategy replaces the adaptive weight selection.
func WithWeightStrategy(strategy WeightStrategy) Option {
	return func(s *Searcher) error {
		if strategy == nil {
			strategy = AdaptiveWeights
		}
		s.strategy = strategy
		return nil
	}
}

// WithRRFConstant sets the rank fusion damping constant.
// Default is DefaultRRFConstant.
func WithRRFConstant(k int) Option {
	return func(s *Searcher) error {
		if k <= 0 {
			k = DefaultRRFConstant
		}
		s.rrfConstant = k
		return nil
	}
}

// NewSearcher creates a new hybrid searcher.
func NewSearcher(
	chunkRepository storage.ChunkRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		strategy:        AdaptiveWeights,
		rrfConstant:     DefaultRRFConstant,
		logger:          slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs a hybrid query and returns up to TopK results, one per
// document, ranked by fused score.
func (s *Searcher) Search(ctx context.Context, query string, opts SearchOptions) ([]*core.HybridResult, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor runs a hybrid query with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts SearchOptions, monitor SearchMonitor) ([]*core.HybridResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	candidateLimit := max(topK*3, candidateFloor)

	monitor.Start(query)

	weights := s.strategy(query)
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	monitor.WeightsChosen(weights)
	s.logger.Debug("weights chosen", "vector", weights.Vector, "keyword", weights.Keyword)

	// Both legs are read-only over the same corpus snapshot, so they run
	// concurrently; fusion blocks until both complete.
	var vectorResults, keywordResults []*core.SearchResult
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		embedding, err := s.embedder.EmbedText(groupCtx, query)
		if err != nil {
			s.logger.Error("error generating embedding for query", "err", err)
			return err
		}
		// No per-leg threshold: weak cosine hits can still fuse well.
		results, err := s.chunkRepository.FindSimilar(groupCtx, embedding, -1, candidateLimit, opts.Category)
		if err != nil {
			s.logger.Error("error querying for similar chunks", "err", err)
			return err
		}
		vectorResults = results
		return nil
	})

	group.Go(func() error {
		chunks, err := s.chunkRepository.AllChunks(groupCtx, opts.Category)
		if err != nil {
			s.logger.Error("error loading keyword candidates", "err", err)
			return err
		}
		candidates := make([]*core.SearchResult, len(chunks))
		for i, chunk := range chunks {
			candidates[i] = &core.SearchResult{
				DocID:        chunk.DocID,
				ChunkID:      chunk.ChunkID,
				Title:        chunk.Title,
				SectionLabel: chunk.SectionLabel,
				Text:         chunk.Text,
			}
		}
		keywordResults = ScoreKeywords(query, candidates, candidateLimit)
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	monitor.AfterVectorSearch(vectorResults)
	monitor.AfterKeywordSearch(keywordResults)

	fused := FuseResults(query, vectorResults, keywordResults, weights, s.rrfConstant)
	monitor.AfterFusion(fused)

	if opts.MinScore > 0 {
		filtered := fused[:0]
		for _, result := range fused {
			if result.CombinedScore >= opts.MinScore {
				filtered = append(filtered, result)
			}
		}
		fused = filtered
	}

	results := DedupeByDocument(fused, topK)
	monitor.Finish(results)

	s.logger.Debug("search complete",
		"vectorHits", len(vectorResults), "keywordHits", len(keywordResults), "results", len(results))
	return results, nil
}
