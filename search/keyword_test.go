package search

import (
	"testing"

	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryTerms(t *testing.T) {
	t.Run("lowercases and strips punctuation", func(t *testing.T) {
		assert.Equal(t, []string{"latency", "budget"}, queryTerms("Latency, Budget!"))
	})

	t.Run("filters short tokens by length only", func(t *testing.T) {
		// "is" and "to" fall to the length filter; "the" survives because
		// there is no stopword list.
		assert.Equal(t, []string{"the", "cluster"}, queryTerms("is the cluster up to"))
	})

	t.Run("deduplicates", func(t *testing.T) {
		assert.Equal(t, []string{"drone"}, queryTerms("drone drone Drone"))
	})

	t.Run("caps at ten terms", func(t *testing.T) {
		query := "alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima"
		assert.Len(t, queryTerms(query), 10)
	})

	t.Run("empty for short-only query", func(t *testing.T) {
		assert.Empty(t, queryTerms("is it up"))
	})
}

func keywordCandidate(docID, title, text string, prior float64) *core.SearchResult {
	return &core.SearchResult{
		DocID:   docID,
		ChunkID: core.ChunkIDFor(docID, 0),
		Title:   title,
		Text:    text,
		Score:   prior,
	}
}

func TestScoreKeywords_TitleBonus(t *testing.T) {
	results := ScoreKeywords("authentication", []*core.SearchResult{
		keywordCandidate("a", "Authentication Guide", "No matching body.", 0),
	}, 10)

	require.Len(t, results, 1)
	// One term, one title hit, no body hit: 0.3 / 1.
	assert.InDelta(t, 0.3, results[0].Score, 1e-9)
	assert.Equal(t, core.SourceKeyword, results[0].Source)
}

func TestScoreKeywords_BodyOccurrencesSaturate(t *testing.T) {
	results := ScoreKeywords("latency", []*core.SearchResult{
		keywordCandidate("two", "", "latency here, latency there", 0),
		keywordCandidate("five", "", "latency latency latency latency latency", 0),
	}, 10)

	require.Len(t, results, 2)
	// Five occurrences cap at 0.3; two occurrences earn 0.2.
	assert.Equal(t, "five", results[0].DocID)
	assert.InDelta(t, 0.3, results[0].Score, 1e-9)
	assert.Equal(t, "two", results[1].DocID)
	assert.InDelta(t, 0.2, results[1].Score, 1e-9)
}

func TestScoreKeywords_NormalizedByTermCount(t *testing.T) {
	// Two terms, only one matches the title: 0.3 / 2.
	results := ScoreKeywords("latency rollback", []*core.SearchResult{
		keywordCandidate("a", "Latency Budget", "nothing else", 0),
	}, 10)

	require.Len(t, results, 1)
	assert.InDelta(t, 0.15, results[0].Score, 1e-9)
}

func TestScoreKeywords_PriorScoreBlended(t *testing.T) {
	results := ScoreKeywords("latency", []*core.SearchResult{
		keywordCandidate("prior", "", "no match at all", 0.5),
	}, 10)

	require.Len(t, results, 1)
	assert.InDelta(t, 0.15, results[0].Score, 1e-9)
}

func TestScoreKeywords_ClampedToOne(t *testing.T) {
	results := ScoreKeywords("latency", []*core.SearchResult{
		keywordCandidate("max", "latency", "latency latency latency", 1.0),
	}, 10)

	require.Len(t, results, 1)
	// 0.3 title + 0.3 capped body + 0.3 prior = 0.9; still within the clamp.
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)

	results = ScoreKeywords("latency budget", []*core.SearchResult{
		keywordCandidate("max", "latency budget", "latency budget latency budget latency budget", 1.0),
	}, 10)
	require.Len(t, results, 1)
	// (0.6 title + 0.6 body)/2 + 0.3 prior = 0.9.
	assert.LessOrEqual(t, results[0].Score, 1.0)
}

func TestScoreKeywords_NoUsableTermsFallsBackToPrior(t *testing.T) {
	results := ScoreKeywords("is it up", []*core.SearchResult{
		keywordCandidate("a", "Anything", "anything", 0.8),
		keywordCandidate("b", "Anything", "anything", 0.2),
	}, 10)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].DocID)
	assert.InDelta(t, 0.24, results[0].Score, 1e-9)
	assert.InDelta(t, 0.06, results[1].Score, 1e-9)
}

func TestScoreKeywords_TruncatesToLimit(t *testing.T) {
	candidates := []*core.SearchResult{
		keywordCandidate("a", "latency", "", 0),
		keywordCandidate("b", "latency", "", 0),
		keywordCandidate("c", "latency", "", 0),
	}

	results := ScoreKeywords("latency", candidates, 2)
	assert.Len(t, results, 2)
}

func TestScoreKeywords_TiesPreserveInputOrder(t *testing.T) {
	candidates := []*core.SearchResult{
		keywordCandidate("first", "latency", "", 0),
		keywordCandidate("second", "latency", "", 0),
	}

	results := ScoreKeywords("latency", candidates, 10)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].DocID)
	assert.Equal(t, "second", results[1].DocID)
}
