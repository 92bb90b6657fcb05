package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuery(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		assert.NoError(t, ValidateQuery("drone detection accuracy"))
	})

	t.Run("empty query", func(t *testing.T) {
		err := ValidateQuery("")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("whitespace only", func(t *testing.T) {
		err := ValidateQuery("   \t\n")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("short tokens only is still valid", func(t *testing.T) {
		// Degrades to a zero keyword score downstream, not an error.
		assert.NoError(t, ValidateQuery("a of it"))
	})
}

func TestValidateDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := &Document{ID: "specs/radar.md", Title: "Radar", Content: "body"}
		assert.NoError(t, ValidateDocument(doc))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidInput)
	})

	t.Run("empty id", func(t *testing.T) {
		err := ValidateDocument(&Document{Content: "body"})
		assert.ErrorIs(t, err, ErrEmptyDocumentID)
	})

	t.Run("id with NUL", func(t *testing.T) {
		err := ValidateDocument(&Document{ID: "bad\x00id"})
		assert.ErrorIs(t, err, ErrInvalidDocumentID)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(&Document{ID: "empty.md"}))
	})
}

func TestValidateChunk(t *testing.T) {
	valid := func() *DocumentChunk {
		return &DocumentChunk{
			ChunkID:      ChunkIDFor("doc", 0),
			DocID:        "doc",
			SectionLabel: "Content",
			Text:         "some text",
			Ordinal:      0,
			TotalChunks:  1,
		}
	}

	t.Run("valid chunk", func(t *testing.T) {
		assert.NoError(t, ValidateChunk(valid()))
	})

	t.Run("nil chunk", func(t *testing.T) {
		assert.ErrorIs(t, ValidateChunk(nil), ErrInvalidChunk)
	})

	t.Run("ordinal out of range", func(t *testing.T) {
		c := valid()
		c.Ordinal = 1
		assert.ErrorIs(t, ValidateChunk(c), ErrInvalidChunk)

		c = valid()
		c.Ordinal = -1
		assert.ErrorIs(t, ValidateChunk(c), ErrInvalidChunk)
	})

	t.Run("empty text", func(t *testing.T) {
		c := valid()
		c.Text = ""
		assert.ErrorIs(t, ValidateChunk(c), ErrInvalidChunk)
	})

	t.Run("missing identity", func(t *testing.T) {
		c := valid()
		c.DocID = ""
		assert.ErrorIs(t, ValidateChunk(c), ErrInvalidChunk)
	})
}
