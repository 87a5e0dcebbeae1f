// Package search finds quotes by fuzzy matching their text.
package search

import (
	"github.com/nikbrunner/quotes/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Quote          model.Quote
	Index          int // position in the searched collection
	MatchedIndexes []int
	Score          int
}

// quoteTexts implements fuzzy.Source for a quote slice.
type quoteTexts []model.Quote

func (qt quoteTexts) String(i int) string {
	return qt[i].Text
}

func (qt quoteTexts) Len() int {
	return len(qt)
}

// FuzzySearch searches quotes by text using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearch(quotes []model.Quote, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, quoteTexts(quotes))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Quote:          quotes[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
