package search

import (
	"strings"
	"unicode"
)

// maxQueryTerms caps how many terms the keyword scorer considers.
const maxQueryTerms = 10

// minTermLength filters short tokens. Length is the only filter; there is no
// stopword list.
const minTermLength = 3

const termPunctuation = ".,!?;:'\"-()[]{}"

// queryTerms tokenizes a query into lowercase terms for keyword scoring.
// Tokens are trimmed of surrounding punctuation, filtered by length,
// deduplicated in first-seen order, and capped at maxQueryTerms.
func queryTerms(query string) []string {
	seen := make(map[string]bool)
	var terms []string

	for _, word := range strings.Fields(query) {
		cleaned := strings.ToLower(strings.Trim(word, termPunctuation))
		if len(cleaned) < minTermLength || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		terms = append(terms, cleaned)
		if len(terms) == maxQueryTerms {
			break
		}
	}

	return terms
}

// rawTokens splits a query on whitespace without any filtering. Used for
// query-shape analysis, not scoring.
func rawTokens(query string) []string {
	return strings.Fields(query)
}

// hasQuotedPhrase reports whether the query contains a double-quoted phrase.
func hasQuotedPhrase(query string) bool {
	first := strings.IndexByte(query, '"')
	if first == -1 {
		return false
	}
	return strings.IndexByte(query[first+1:], '"') != -1
}

// looksLikeEntity reports whether a token resembles an acronym, a number, or
// a capitalized proper noun. Such tokens signal that exact matching matters.
func looksLikeEntity(token string) bool {
	token = strings.Trim(token, termPunctuation)
	if token == "" {
		return false
	}

	hasDigit := false
	allUpper := true
	for _, r := range token {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			allUpper = false
		}
	}
	if hasDigit {
		return true
	}

	runes := []rune(token)
	if allUpper && len(runes) >= 2 {
		return true
	}

	// Capitalized word, e.g. a product or place name.
	return len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsLower(runes[1])
}

// containsFold reports whether needle appears in haystack, case-insensitively.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
