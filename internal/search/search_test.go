package search

import (
	"testing"

	"github.com/nikbrunner/quotes/internal/model"
)

func sample() []model.Quote {
	return []model.Quote{
		{Text: "Stay hungry, stay foolish", Category: "Life"},
		{Text: "Simplicity is prerequisite for reliability", Category: "Engineering"},
		{Text: "Stay curious", Category: "Life"},
	}
}

func TestFuzzySearch_EmptyQuery(t *testing.T) {
	results := FuzzySearch(sample(), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearch_NoMatches(t *testing.T) {
	results := FuzzySearch(sample(), "zzzz")

	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestFuzzySearch_MatchesByText(t *testing.T) {
	results := FuzzySearch(sample(), "stay")

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	// Adjacent matches at the start of the text score best.
	for _, r := range results[:2] {
		if r.Quote.Category != "Life" {
			t.Errorf("unexpected top match %+v", r.Quote)
		}
	}
}

func TestFuzzySearch_IndexPointsIntoCollection(t *testing.T) {
	quotes := sample()
	results := FuzzySearch(quotes, "reliab")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Index != 1 {
		t.Errorf("expected index 1, got %d", results[0].Index)
	}
	if quotes[results[0].Index] != results[0].Quote {
		t.Error("expected Index to address the matched quote")
	}
}

func TestFuzzySearch_MatchedIndexes(t *testing.T) {
	results := FuzzySearch(sample(), "sc")

	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	for _, r := range results {
		if len(r.MatchedIndexes) != 2 {
			t.Errorf("expected 2 matched indexes for %q, got %v", r.Quote.Text, r.MatchedIndexes)
		}
	}
}

func TestFuzzySearch_CategoryIgnored(t *testing.T) {
	results := FuzzySearch(sample(), "Engineering")

	if len(results) != 0 {
		t.Errorf("expected category not to be searched, got %d results", len(results))
	}
}
