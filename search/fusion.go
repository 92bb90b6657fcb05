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

// DefaultRRFConstant is the reciprocal rank fusion damping constant. Larger
// values flatten the difference between adjacent ranks.
const DefaultRRFConstant = 60

const (
	titleMatchBonus = 0.2
	bodyMatchBonus  = 0.1
)

// FuseResults merges the vector and keyword rank lists with reciprocal rank
// fusion. A chunk at 1-indexed rank r in a list contributes weight/(k+r) from
// that list; a chunk absent from a list contributes 0 from it. A chunk
// appearing in both lists is fused once using both ranks.
//
// After fusion an exact-match bonus is added when the raw query appears
// verbatim (case-insensitive): +0.2 for a title hit, else +0.1 for a body
// hit. The combined score is clamped to 1.0. Output is sorted descending by
// combined score, ties broken by vector rank then keyword rank. No score
// threshold is applied here; callers filter after fusion so a strong fused
// score survives either retriever's own cutoff.
func FuseResults(query string, vectorResults, keywordResults []*core.SearchResult, weights Weights, k int) []*core.HybridResult {
	if k <= 0 {
		k = DefaultRRFConstant
	}

	type entry struct {
		result      *core.SearchResult
		vectorRank  int // 0 = absent
		keywordRank int
	}

	entries := make(map[string]*entry)
	var order []string

	key := func(r *core.SearchResult) string {
		return r.DocID + "\x00" + r.ChunkID
	}

	// Within a list, only the best rank for a chunk counts.
	for i, r := range vectorResults {
		id := key(r)
		if e, ok := entries[id]; ok {
			if e.vectorRank == 0 {
				e.vectorRank = i + 1
			}
			continue
		}
		entries[id] = &entry{result: r, vectorRank: i + 1}
		order = append(order, id)
	}
	for i, r := range keywordResults {
		id := key(r)
		if e, ok := entries[id]; ok {
			if e.keywordRank == 0 {
				e.keywordRank = i + 1
			}
			continue
		}
		entries[id] = &entry{result: r, keywordRank: i + 1}
		order = append(order, id)
	}

	trimmedQuery := strings.TrimSpace(query)

	fused := make([]*core.HybridResult, 0, len(order))
	for _, id := range order {
		e := entries[id]

		var breakdown core.ScoreBreakdown
		if e.vectorRank > 0 {
			breakdown.VectorComponent = weights.Vector / float64(k+e.vectorRank)
		}
		if e.keywordRank > 0 {
			breakdown.KeywordComponent = weights.Keyword / float64(k+e.keywordRank)
		}

		// Title precedence: the bonuses do not stack.
		switch {
		case containsFold(e.result.Title, trimmedQuery):
			breakdown.ExactMatchBonus = titleMatchBonus
		case containsFold(e.result.Text, trimmedQuery):
			breakdown.ExactMatchBonus = bodyMatchBonus
		}

		combined := breakdown.VectorComponent + breakdown.KeywordComponent + breakdown.ExactMatchBonus
		fused = append(fused, &core.HybridResult{
			SearchResult:  *e.result,
			CombinedScore: min(combined, 1.0),
			Breakdown:     breakdown,
		})
	}

	slices.SortStableFunc(fused, func(a, b *core.HybridResult) int {
		switch {
		case a.CombinedScore > b.CombinedScore:
			return -1
		case a.CombinedScore < b.CombinedScore:
			return 1
		default:
			return 0
		}
	})

	return fused
}
