package search

// Weights are the relative coefficients applied to the vector and keyword
// rank lists during fusion. They need not sum to 1.
type Weights struct {
	Vector  float64
	Keyword float64
}

// WeightStrategy maps raw query text to fusion weights. Implementations must
// be pure: deterministic for identical input, no side effects.
type WeightStrategy func(query string) Weights

// AdaptiveWeights chooses fusion weights from the shape of the query:
//
//   - a quoted phrase signals the user wants those exact words, so keyword
//     matching dominates (0.3 / 0.7)
//   - a short query carrying an acronym, a number, or a capitalized name is
//     an identifier lookup, so the legs are balanced (0.5 / 0.5)
//   - a long query is a natural-language question, so semantic matching
//     dominates (0.8 / 0.2)
//   - everything else gets the default lean toward semantics (0.7 / 0.3)
func AdaptiveWeights(query string) Weights {
	if hasQuotedPhrase(query) {
		return Weights{Vector: 0.3, Keyword: 0.7}
	}

	tokens := rawTokens(query)
	if len(tokens) <= 3 {
		for _, token := range tokens {
			if looksLikeEntity(token) {
				return Weights{Vector: 0.5, Keyword: 0.5}
			}
		}
	}
	if len(tokens) > 6 {
		return Weights{Vector: 0.8, Keyword: 0.2}
	}

	return Weights{Vector: 0.7, Keyword: 0.3}
}
