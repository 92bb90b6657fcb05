package search

import "github.com/phoenixvc/rooivalk-knowledge/core"

// DedupeByDocument keeps only the highest-ranked chunk per document,
// preserving input order, and stops once topK unique documents are collected.
// A topK of 0 or less applies no count limit.
func DedupeByDocument(results []*core.HybridResult, topK int) []*core.HybridResult {
	seen := make(map[string]bool, len(results))
	deduped := make([]*core.HybridResult, 0, min(len(results), max(topK, 0)))

	for _, result := range results {
		if seen[result.DocID] {
			continue
		}
		seen[result.DocID] = true
		deduped = append(deduped, result)
		if topK > 0 && len(deduped) == topK {
			break
		}
	}

	return deduped
}
