package search

import (
	"testing"

	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fusionResult(docID string, ordinal int, title, text string, score float64, source core.ResultSource) *core.SearchResult {
	return &core.SearchResult{
		DocID:   docID,
		ChunkID: core.ChunkIDFor(docID, ordinal),
		Title:   title,
		Text:    text,
		Score:   score,
		Source:  source,
	}
}

func TestFuseResults_BothListsContribute(t *testing.T) {
	vector := []*core.SearchResult{
		fusionResult("a", 0, "Title A", "body a", 0.9, core.SourceVector),
	}
	keyword := []*core.SearchResult{
		fusionResult("b", 0, "Title B", "body b", 0.5, core.SourceKeyword),
		fusionResult("a", 0, "Title A", "body a", 0.4, core.SourceKeyword),
	}
	weights := Weights{Vector: 0.7, Keyword: 0.3}

	fused := FuseResults("unrelated query", vector, keyword, weights, 60)
	require.Len(t, fused, 2)

	var a, b *core.HybridResult
	for _, r := range fused {
		switch r.DocID {
		case "a":
			a = r
		case "b":
			b = r
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)

	// a: vector rank 1, keyword rank 2. b: keyword rank 1 only.
	assert.InDelta(t, 0.7/61, a.Breakdown.VectorComponent, 1e-9)
	assert.InDelta(t, 0.3/62, a.Breakdown.KeywordComponent, 1e-9)
	assert.InDelta(t, 0.7/61+0.3/62, a.CombinedScore, 1e-9)

	assert.Zero(t, b.Breakdown.VectorComponent)
	assert.InDelta(t, 0.3/61, b.Breakdown.KeywordComponent, 1e-9)

	// Sorted descending.
	assert.Equal(t, "a", fused[0].DocID)
}

func TestFuseResults_ScoreDecreasesWithRank(t *testing.T) {
	vector := []*core.SearchResult{
		fusionResult("a", 0, "Title A", "body a", 0.9, core.SourceVector),
		fusionResult("b", 0, "Title B", "body b", 0.7, core.SourceVector),
		fusionResult("c", 0, "Title C", "body c", 0.5, core.SourceVector),
	}
	weights := Weights{Vector: 1.0, Keyword: 0.0}

	fused := FuseResults("unrelated query", vector, nil, weights, 60)
	require.Len(t, fused, 3)

	for i := 1; i < len(fused); i++ {
		assert.Greater(t, fused[i-1].CombinedScore, fused[i].CombinedScore,
			"single-list fusion preserves strict rank order")
	}
}

func TestFuseResults_ChunkInBothListsFusedOnce(t *testing.T) {
	vector := []*core.SearchResult{fusionResult("a", 0, "", "", 0.9, core.SourceVector)}
	keyword := []*core.SearchResult{fusionResult("a", 0, "", "", 0.6, core.SourceKeyword)}

	fused := FuseResults("q", vector, keyword, Weights{Vector: 1, Keyword: 1}, 60)
	assert.Len(t, fused, 1)
}

func TestFuseResults_ExactMatchBonus(t *testing.T) {
	query := "latency budget"

	t.Run("title match earns 0.2", func(t *testing.T) {
		fused := FuseResults(query,
			[]*core.SearchResult{fusionResult("a", 0, "Authentication Latency Budget", "no phrase here", 0.9, core.SourceVector)},
			nil, Weights{Vector: 0.7, Keyword: 0.3}, 60)

		require.Len(t, fused, 1)
		assert.InDelta(t, 0.2, fused[0].Breakdown.ExactMatchBonus, 1e-9)
	})

	t.Run("body match earns 0.1", func(t *testing.T) {
		fused := FuseResults(query,
			[]*core.SearchResult{fusionResult("a", 0, "Other Title", "the latency budget is 195ms", 0.9, core.SourceVector)},
			nil, Weights{Vector: 0.7, Keyword: 0.3}, 60)

		require.Len(t, fused, 1)
		assert.InDelta(t, 0.1, fused[0].Breakdown.ExactMatchBonus, 1e-9)
	})

	t.Run("title takes precedence, bonuses do not stack", func(t *testing.T) {
		fused := FuseResults(query,
			[]*core.SearchResult{fusionResult("a", 0, "Latency Budget", "latency budget in the body too", 0.9, core.SourceVector)},
			nil, Weights{Vector: 0.7, Keyword: 0.3}, 60)

		require.Len(t, fused, 1)
		assert.InDelta(t, 0.2, fused[0].Breakdown.ExactMatchBonus, 1e-9)
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		fused := FuseResults("LATENCY BUDGET",
			[]*core.SearchResult{fusionResult("a", 0, "latency budget", "", 0.9, core.SourceVector)},
			nil, Weights{Vector: 0.7, Keyword: 0.3}, 60)

		require.Len(t, fused, 1)
		assert.InDelta(t, 0.2, fused[0].Breakdown.ExactMatchBonus, 1e-9)
	})
}

func TestFuseResults_CombinedScoreClamped(t *testing.T) {
	fused := FuseResults("latency",
		[]*core.SearchResult{fusionResult("a", 0, "latency", "", 0.9, core.SourceVector)},
		[]*core.SearchResult{fusionResult("a", 0, "latency", "", 0.9, core.SourceKeyword)},
		Weights{Vector: 40, Keyword: 40}, 1)

	require.Len(t, fused, 1)
	assert.Equal(t, 1.0, fused[0].CombinedScore)
}

func TestFuseResults_DuplicateWithinListUsesBestRank(t *testing.T) {
	vector := []*core.SearchResult{
		fusionResult("a", 0, "", "", 0.9, core.SourceVector),
		fusionResult("a", 0, "", "", 0.8, core.SourceVector),
	}

	fused := FuseResults("q", vector, nil, Weights{Vector: 1, Keyword: 0}, 60)
	require.Len(t, fused, 1)
	assert.InDelta(t, 1.0/61, fused[0].Breakdown.VectorComponent, 1e-9)
}

func TestFuseResults_DistinctChunksSameDocumentKept(t *testing.T) {
	// Fusion dedupes by (docID, chunkID); per-document dedup happens later.
	vector := []*core.SearchResult{
		fusionResult("a", 0, "", "", 0.9, core.SourceVector),
		fusionResult("a", 1, "", "", 0.8, core.SourceVector),
	}

	fused := FuseResults("q", vector, nil, Weights{Vector: 1, Keyword: 0}, 60)
	assert.Len(t, fused, 2)
}

func TestFuseResults_EmptyInputs(t *testing.T) {
	assert.Empty(t, FuseResults("q", nil, nil, Weights{Vector: 0.7, Keyword: 0.3}, 60))
}
