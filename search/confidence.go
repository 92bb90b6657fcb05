package search

import "github.com/phoenixvc/rooivalk-knowledge/core"

const (
	highConfidenceMean   = 0.85
	mediumConfidenceMean = 0.75
)

// EstimateConfidence maps the mean of the top-n fused scores to a coarse
// label: high above 0.85, medium above 0.75, low otherwise. An empty result
// set yields low with a mean of 0. The label is advisory; consumers decide
// whether to answer, hedge, or decline.
func EstimateConfidence(results []*core.HybridResult, n int) (core.ConfidenceLevel, float64) {
	if len(results) == 0 {
		return core.ConfidenceLow, 0
	}
	if n <= 0 || n > len(results) {
		n = len(results)
	}

	sum := 0.0
	for _, result := range results[:n] {
		sum += result.CombinedScore
	}
	mean := sum / float64(n)

	switch {
	case mean > highConfidenceMean:
		return core.ConfidenceHigh, mean
	case mean > mediumConfidenceMean:
		return core.ConfidenceMedium, mean
	default:
		return core.ConfidenceLow, mean
	}
}
