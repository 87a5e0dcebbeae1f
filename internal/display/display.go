// Package display chooses which quote to show and renders it.
package display

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nikbrunner/quotes/internal/model"
)

// Picker is the subset of *rand.Rand used to choose a random quote.
type Picker interface {
	IntN(n int) int
}

// Pick chooses the quote to display for the given filter selection:
// a random quote when selection is AllCategories, otherwise the first quote
// in that category. ok is false when there is nothing to show.
// A nil rnd uses the global source.
func Pick(quotes []model.Quote, selection string, rnd Picker) (model.Quote, bool) {
	if selection != model.AllCategories {
		filtered := model.Filter(quotes, selection)
		if len(filtered) == 0 {
			return model.Quote{}, false
		}
		return filtered[0], true
	}

	if len(quotes) == 0 {
		return model.Quote{}, false
	}
	var idx int
	if rnd != nil {
		idx = rnd.IntN(len(quotes))
	} else {
		idx = rand.IntN(len(quotes))
	}
	return quotes[idx], true
}

// Text renders a quote for plain terminal output.
func Text(q model.Quote) string {
	return fmt.Sprintf("%q (%s)", q.Text, q.Category)
}

// HTML renders a quote as <strong>text</strong> <em>(category)</em> with all
// user text escaped.
func HTML(q model.Quote) (string, error) {
	strong := &html.Node{Type: html.ElementNode, DataAtom: atom.Strong, Data: "strong"}
	strong.AppendChild(&html.Node{Type: html.TextNode, Data: q.Text})

	em := &html.Node{Type: html.ElementNode, DataAtom: atom.Em, Data: "em"}
	em.AppendChild(&html.Node{Type: html.TextNode, Data: "(" + q.Category + ")"})

	var b strings.Builder
	for _, n := range []*html.Node{strong, {Type: html.TextNode, Data: " "}, em} {
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
