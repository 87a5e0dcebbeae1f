package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "f/F", "Enter")
	Desc string // Short description (e.g., "filter", "add")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "n:new f/F:filter"
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter add  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Quote and filter navigation
	Action []Hint // Add, sync, push, yank
	System []Hint // ?, q, Esc
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeAdd:
		return HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "next field"}},
			Action: []Hint{{Key: "Enter", Desc: "add"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/Esc", Desc: "close"}, {Key: "q", Desc: "quit"}},
		}
	default:
		return a.getNormalModeHints()
	}
}

func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "n", Desc: "new"},
			{Key: "f/F", Desc: "filter"},
		},
		Action: []Hint{
			{Key: "a", Desc: "add"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	if a.syncer != nil {
		hints.Action = append(hints.Action, Hint{Key: "s", Desc: "sync"})
	}
	if a.hasQuote {
		if a.syncer != nil {
			hints.Action = append(hints.Action, Hint{Key: "p", Desc: "push"})
		}
		hints.Action = append(hints.Action, Hint{Key: "y", Desc: "yank"})
	}

	return hints
}
