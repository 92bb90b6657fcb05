package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := FingerprintFromContent("radar cross section analysis")
		b := FingerprintFromContent("radar cross section analysis")
		assert.Equal(t, a, b)
	})

	t.Run("different content differs", func(t *testing.T) {
		a := FingerprintFromContent("radar cross section analysis")
		b := FingerprintFromContent("radar cross section analysis v2")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content", func(t *testing.T) {
		// Still a valid fingerprint; empty documents are recorded, not dropped.
		a := FingerprintFromContent("")
		b := FingerprintFromContent("")
		assert.Equal(t, a, b)
	})
}

func TestChunkIDFor(t *testing.T) {
	assert.Equal(t, "specs/sensors.md#0", ChunkIDFor("specs/sensors.md", 0))
	assert.Equal(t, "specs/sensors.md#12", ChunkIDFor("specs/sensors.md", 12))
}

func TestConfidenceLevelString(t *testing.T) {
	assert.Equal(t, "high", ConfidenceHigh.String())
	assert.Equal(t, "medium", ConfidenceMedium.String())
	assert.Equal(t, "low", ConfidenceLow.String())
	assert.Equal(t, "low", ConfidenceLevel(0).String())
}

func TestResultSourceString(t *testing.T) {
	assert.Equal(t, "vector", SourceVector.String())
	assert.Equal(t, "keyword", SourceKeyword.String())
	assert.Equal(t, "unknown", ResultSource(0).String())
}
