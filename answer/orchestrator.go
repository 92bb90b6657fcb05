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

package answer

import (
	"context"
	"log/slog"

	"github.com/phoenixvc/rooivalk-knowledge/ai"
	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/phoenixvc/rooivalk-knowledge/search"
)

// DefaultTokenBudget bounds the prompt size handed to the completion service.
const DefaultTokenBudget = 2000

// Answer is the synthesized response to a question, grounded in retrieved
// sources. Sources holds only the chunks that made it into the prompt, in
// citation order.
type Answer struct {
	Answer     string
	Sources    []*core.HybridResult
	Confidence core.ConfidenceLevel
	TokensUsed int
}

// AskOptions controls a single Ask call.
type AskOptions struct {
	// TopK is the number of documents retrieved. Defaults to search.DefaultTopK.
	TopK int

	// Category restricts retrieval to one category. Empty matches all.
	Category string

	// History is replayed to the completion service for follow-up questions.
	History []ai.ConversationTurn
}

// Orchestrator turns a question into a grounded answer: it retrieves
// relevant chunks, builds a prompt with numbered source blocks, and asks the
// completion service to answer with citations.
type Orchestrator struct {
	searcher    *search.Searcher
	completer   ai.Completer
	tokenBudget int
	logger      *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithTokenBudget caps the prompt size in tokens. Non-positive disables the
// cap. Default is DefaultTokenBudget.
func WithTokenBudget(budget int) Option {
	return func(o *Orchestrator) error {
		o.tokenBudget = budget
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "answer")
		return nil
	}
}

// NewOrchestrator creates a new answer orchestrator.
func NewOrchestrator(searcher *search.Searcher, provider ai.Provider, opts ...Option) (*Orchestrator, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	o := &Orchestrator{
		searcher:    searcher,
		completer:   provider.Completer(),
		tokenBudget: DefaultTokenBudget,
		logger:      slog.Default().With("component", "answer"),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Ask answers a question from the indexed corpus. Retrieval failures and
// completion failures are returned as errors; an empty retrieval is not an
// error, it yields a canned no-answer response with low confidence.
func (o *Orchestrator) Ask(ctx context.Context, question string, opts AskOptions) (*Answer, error) {
	results, err := o.searcher.Search(ctx, question, search.SearchOptions{
		TopK:     opts.TopK,
		Category: opts.Category,
	})
	if err != nil {
		return nil, err
	}

	confidence, mean := search.EstimateConfidence(results, len(results))
	o.logger.Debug("retrieval for question complete",
		"results", len(results), "confidence", confidence.String(), "meanScore", mean)

	if len(results) == 0 {
		return &Answer{
			Answer:     noAnswerText,
			Sources:    []*core.HybridResult{},
			Confidence: core.ConfidenceLow,
		}, nil
	}

	userPrompt, included := buildUserPrompt(question, results, o.tokenBudget)

	text, err := o.completer.Complete(ctx, systemPrompt, opts.History, userPrompt)
	if err != nil {
		o.logger.Error("completion failed", "err", err)
		return nil, err
	}

	tokens := countTokens(systemPrompt) + countTokens(userPrompt) + countTokens(text)
	for _, turn := range opts.History {
		tokens += countTokens(turn.Content)
	}

	return &Answer{
		Answer:     text,
		Sources:    included,
		Confidence: confidence,
		TokensUsed: tokens,
	}, nil
}
