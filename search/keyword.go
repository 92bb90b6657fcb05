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

package search

import (
	"slices"
	"strings"

	"github.com/phoenixvc/rooivalk-knowledge/core"
)

const (
	titleTermBonus     = 0.3
	bodyOccurrenceStep = 0.1
	bodyTermCap        = 0.3
	priorScoreBlend    = 0.3
)

// ScoreKeywords ranks candidates by lexical overlap with the query.
//
// Per query term, a candidate earns a flat bonus for a title match and a
// saturating per-occurrence bonus for body matches. The sum is normalized by
// the term count, blended with 30% of any relevance score the candidate
// already carries, and clamped to 1.0. Candidates come back sorted descending
// by score, truncated to limit; the input order breaks ties so results are
// deterministic. A query with no usable terms scores every candidate by its
// prior alone.
func ScoreKeywords(query string, candidates []*core.SearchResult, limit int) []*core.SearchResult {
	terms := queryTerms(query)

	scored := make([]*core.SearchResult, 0, len(candidates))
	for _, candidate := range candidates {
		score := keywordScore(terms, candidate)
		scored = append(scored, &core.SearchResult{
			DocID:        candidate.DocID,
			ChunkID:      candidate.ChunkID,
			Title:        candidate.Title,
			SectionLabel: candidate.SectionLabel,
			Text:         candidate.Text,
			Score:        score,
			Source:       core.SourceKeyword,
		})
	}

	slices.SortStableFunc(scored, func(a, b *core.SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func keywordScore(terms []string, candidate *core.SearchResult) float64 {
	score := 0.0

	if len(terms) > 0 {
		title := strings.ToLower(candidate.Title)
		body := strings.ToLower(candidate.Text)

		sum := 0.0
		for _, term := range terms {
			if strings.Contains(title, term) {
				sum += titleTermBonus
			}
			if occurrences := strings.Count(body, term); occurrences > 0 {
				sum += min(bodyOccurrenceStep*float64(occurrences), bodyTermCap)
			}
		}
		score = sum / float64(len(terms))
	}

	score += priorScoreBlend * candidate.Score
	return min(score, 1.0)
}
