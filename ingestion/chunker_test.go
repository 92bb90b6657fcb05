package ingestion

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkDocument_EmptyBody(t *testing.T) {
	chunker := NewChunker(DefaultChunkPolicy())

	chunks := chunker.ChunkDocument(&core.Document{ID: "doc-1", Title: "Empty"})
	assert.Empty(t, chunks)
}

func TestChunkDocument_SingleParagraph(t *testing.T) {
	chunker := NewChunker(DefaultChunkPolicy())

	chunks := chunker.ChunkDocument(&core.Document{
		ID:       "doc-1",
		Title:    "Guide",
		Category: "ops",
		Content:  "A single short paragraph.",
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, "doc-1#0", chunks[0].ChunkID)
	assert.Equal(t, "doc-1", chunks[0].DocID)
	assert.Equal(t, "Guide", chunks[0].Title)
	assert.Equal(t, DefaultSectionLabel, chunks[0].SectionLabel)
	assert.Equal(t, "A single short paragraph.", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Ordinal)
	assert.Equal(t, 1, chunks[0].TotalChunks)
	assert.Equal(t, "ops", chunks[0].Category)
}

func TestChunkDocument_HeadingSections(t *testing.T) {
	body := "Intro text before any heading.\n\n" +
		"# Setup\n\nInstall the thing.\n\n" +
		"## Configuration\n\nEdit the config file.\n"

	chunker := NewChunker(DefaultChunkPolicy())
	chunks := chunker.ChunkDocument(&core.Document{ID: "doc-1", Content: body})

	require.Len(t, chunks, 3)
	assert.Equal(t, DefaultSectionLabel, chunks[0].SectionLabel)
	assert.Equal(t, "Intro text before any heading.", chunks[0].Text)
	assert.Equal(t, "Setup", chunks[1].SectionLabel)
	assert.Equal(t, "Configuration", chunks[2].SectionLabel)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Ordinal)
		assert.Equal(t, 3, chunk.TotalChunks)
		assert.Equal(t, core.ChunkIDFor("doc-1", i), chunk.ChunkID)
	}
}

func TestChunkDocument_EmptySectionsSkipped(t *testing.T) {
	body := "# First\n\n# Second\n\nOnly this section has content.\n\n# Third\n"

	chunker := NewChunker(DefaultChunkPolicy())
	chunks := chunker.ChunkDocument(&core.Document{ID: "doc-1", Content: body})

	require.Len(t, chunks, 1)
	assert.Equal(t, "Second", chunks[0].SectionLabel)
}

func TestChunkDocument_FlushWithOverlap(t *testing.T) {
	// Three paragraphs where the first two fill a chunk and the third forces
	// a flush.
	para1 := strings.Repeat("alpha ", 20) + "omega"
	para2 := strings.Repeat("beta ", 20) + "sigma"
	para3 := strings.Repeat("gamma ", 20) + "delta"
	body := para1 + "\n\n" + para2 + "\n\n" + para3

	chunker := NewChunker(ChunkPolicy{MaxChunkChars: 250, OverlapWords: 5})
	chunks := chunker.ChunkDocument(&core.Document{ID: "doc-1", Content: body})

	require.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Text), 250)
	}

	// Second chunk starts with the last words of the first.
	assert.True(t, strings.HasSuffix(chunks[0].Text, "sigma"))
	assert.True(t, strings.HasPrefix(chunks[1].Text, "beta beta beta beta sigma"),
		"expected overlap seed, got: %q", chunks[1].Text[:40])
	assert.Contains(t, chunks[1].Text, "delta")
}

func TestChunkDocument_OversizedParagraphHardSplit(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("word ", 200)) // ~1000 chars

	chunker := NewChunker(ChunkPolicy{MaxChunkChars: 120, OverlapWords: 5})
	chunks := chunker.ChunkDocument(&core.Document{ID: "doc-1", Content: para})

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Text), 120)
		assert.NotEmpty(t, chunk.Text)
	}
}

func TestChunkDocument_ChunkOrderIsDocumentOrder(t *testing.T) {
	body := "# A\n\nfirst\n\n# B\n\nsecond\n\n# C\n\nthird"

	chunker := NewChunker(DefaultChunkPolicy())
	chunks := chunker.ChunkDocument(&core.Document{ID: "doc-1", Content: body})

	require.Len(t, chunks, 3)
	assert.Equal(t, "first", chunks[0].Text)
	assert.Equal(t, "second", chunks[1].Text)
	assert.Equal(t, "third", chunks[2].Text)
}

func TestNewChunker_DefaultsOnZeroPolicy(t *testing.T) {
	chunker := NewChunker(ChunkPolicy{})
	assert.Equal(t, DefaultChunkPolicy().MaxChunkChars, chunker.policy.MaxChunkChars)
}

func TestTailWords(t *testing.T) {
	assert.Equal(t, "", tailWords("one two three", 0))
	assert.Equal(t, "two three", tailWords("one two three", 2))
	assert.Equal(t, "one two three", tailWords("one two three", 10))
}

func TestHardSplitWords_LongWord(t *testing.T) {
	parts := hardSplitWords("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, parts)
}

func TestHardSplitWords_MultiByteRunes(t *testing.T) {
	// Each é is two bytes, so a five-byte cap cannot cut on an even byte
	// count without landing mid-rune.
	word := strings.Repeat("é", 10)
	parts := hardSplitWords(word, 5)

	var rejoined string
	for _, part := range parts {
		assert.True(t, utf8.ValidString(part), "piece %q must be valid UTF-8", part)
		assert.LessOrEqual(t, len(part), 5)
		rejoined += part
	}
	assert.Equal(t, word, rejoined)
}

func TestHardSplitWords_CapBelowRuneSize(t *testing.T) {
	// A four-byte rune cannot fit a two-byte cap; it is emitted whole
	// rather than torn apart.
	parts := hardSplitWords("\U0001F680\U0001F680", 2)
	require.Len(t, parts, 2)
	for _, part := range parts {
		assert.True(t, utf8.ValidString(part))
	}
}
