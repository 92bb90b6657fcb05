package search

import (
	"testing"

	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/stretchr/testify/assert"
)

func confidenceInput(scores ...float64) []*core.HybridResult {
	results := make([]*core.HybridResult, len(scores))
	for i, score := range scores {
		results[i] = &core.HybridResult{CombinedScore: score}
	}
	return results
}

func TestEstimateConfidence(t *testing.T) {
	tests := []struct {
		name      string
		scores    []float64
		n         int
		wantLevel core.ConfidenceLevel
		wantMean  float64
	}{
		{"empty results are low with zero mean", nil, 3, core.ConfidenceLow, 0},
		{"high above 0.85", []float64{0.9, 0.9, 0.9}, 3, core.ConfidenceHigh, 0.9},
		{"exactly 0.85 is medium", []float64{0.85}, 1, core.ConfidenceMedium, 0.85},
		{"medium above 0.75", []float64{0.8, 0.8}, 2, core.ConfidenceMedium, 0.8},
		{"exactly 0.75 is low", []float64{0.75}, 1, core.ConfidenceLow, 0.75},
		{"low otherwise", []float64{0.5, 0.4}, 2, core.ConfidenceLow, 0.45},
		{"n limits the window", []float64{0.9, 0.9, 0.1}, 2, core.ConfidenceHigh, 0.9},
		{"n beyond length uses all", []float64{0.9, 0.7}, 10, core.ConfidenceMedium, 0.8},
		{"non-positive n uses all", []float64{0.9, 0.7}, 0, core.ConfidenceMedium, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, mean := EstimateConfidence(confidenceInput(tt.scores...), tt.n)
			assert.Equal(t, tt.wantLevel, level)
			assert.InDelta(t, tt.wantMean, mean, 1e-9)
		})
	}
}
