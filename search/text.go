package search

import "strings"

// Stop words filtered out before relevance scoring
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// distinctTokens returns the deduplicated filtered tokens of a query.
func distinctTokens(query string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range tokenizeAndFilter(query) {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// RelevancePolicy computes the minimum text-search relevance from the
// distinct query tokens. Rows scoring below the returned value are dropped.
type RelevancePolicy func(queryTokens []string) float64

// DefaultRelevancePolicy requires a score of at least the distinct token
// count, roughly one occurrence per query word.
func DefaultRelevancePolicy(queryTokens []string) float64 {
	return float64(len(queryTokens))
}

// textScore is the term-frequency relevance of a document against the query
// tokens: total occurrences of query tokens among the document tokens.
func textScore(docTokens []string, queryTokens []string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	counts := make(map[string]int, len(docTokens))
	for _, tok := range docTokens {
		counts[tok]++
	}

	var score float64
	for _, q := range queryTokens {
		score += float64(counts[q])
	}
	return score
}
