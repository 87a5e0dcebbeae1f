package model

import "strings"

const (
	// AllCategories is the filter selection that matches every quote.
	AllCategories = "all"

	// RemoteCategory tags quotes that were mapped from a remote item.
	RemoteCategory = "Server"
)

// Quote is a piece of text with the category it was filed under.
type Quote struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// NewQuote validates the fields and returns a Quote holding them as given.
// Both fields must be non-empty after trimming surrounding whitespace; the
// stored values are not trimmed, since merges compare text exactly.
func NewQuote(text, category string) (Quote, error) {
	if strings.TrimSpace(text) == "" {
		return Quote{}, &ValidationError{Field: "text"}
	}
	if strings.TrimSpace(category) == "" {
		return Quote{}, &ValidationError{Field: "category"}
	}

	return Quote{Text: text, Category: category}, nil
}

// Validate reports whether q could have been produced by NewQuote.
func (q Quote) Validate() error {
	_, err := NewQuote(q.Text, q.Category)
	return err
}

// RemoteItem is the subset of a remote post the sync client understands.
type RemoteItem struct {
	ID     int    `json:"id,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	UserID int    `json:"userId,omitempty"`
}

// FromRemote maps a remote item into the local quote shape.
func FromRemote(item RemoteItem) Quote {
	return Quote{Text: item.Title, Category: RemoteCategory}
}

// Seed returns the built-in quotes used when nothing has been persisted yet.
func Seed() []Quote {
	return []Quote{
		{Text: "The only limit to our realization of tomorrow is our doubts of today.", Category: "Inspiration"},
		{Text: "Life is 10% what happens to us and 90% how we react to it.", Category: "Life"},
		{Text: "Do not go where the path may lead, go instead where there is no path and leave a trail.", Category: "Motivation"},
	}
}
