package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter_NoBlock(t *testing.T) {
	content := "Just a plain document body."

	fm, body, err := ParseFrontmatter(content)
	require.NoError(t, err)
	assert.Equal(t, Frontmatter{}, fm)
	assert.Equal(t, content, body)
}

func TestParseFrontmatter_Valid(t *testing.T) {
	content := "---\ntitle: Latency Budget\ncategory: performance\ntags:\n  - sla\n  - latency\n---\nThe body starts here."

	fm, body, err := ParseFrontmatter(content)
	require.NoError(t, err)
	assert.Equal(t, "Latency Budget", fm.Title)
	assert.Equal(t, "performance", fm.Category)
	assert.Equal(t, []string{"sla", "latency"}, fm.Tags)
	assert.Equal(t, "The body starts here.", body)
}

func TestParseFrontmatter_UnknownFieldRejected(t *testing.T) {
	content := "---\ntitle: Ok\nauthor: nobody\n---\nbody"

	fm, body, err := ParseFrontmatter(content)
	require.Error(t, err)
	assert.Equal(t, Frontmatter{}, fm)
	// Full content comes back so the caller can fall back.
	assert.Equal(t, content, body)
}

func TestParseFrontmatter_Unterminated(t *testing.T) {
	content := "---\ntitle: Never closed\nbody keeps going"

	fm, body, err := ParseFrontmatter(content)
	require.ErrorIs(t, err, ErrUnterminatedFrontmatter)
	assert.Equal(t, Frontmatter{}, fm)
	assert.Equal(t, content, body)
}

func TestParseFrontmatter_EmptyBlock(t *testing.T) {
	content := "---\n---\nbody"

	fm, body, err := ParseFrontmatter(content)
	require.NoError(t, err)
	assert.Equal(t, Frontmatter{}, fm)
	assert.Equal(t, "body", body)
}
