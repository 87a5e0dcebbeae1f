package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	NewQuote   key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	AllFilter  key.Binding
	Add        key.Binding
	Sync       key.Binding
	Push       key.Binding
	Yank       key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Form keys
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NewQuote: key.NewBinding(
			key.WithKeys("n", " "),
			key.WithHelp("n", "new quote"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("f", "l", "right"),
			key.WithHelp("f", "next category"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("F", "h", "left"),
			key.WithHelp("F", "prev category"),
		),
		AllFilter: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "all categories"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add quote"),
		),
		Sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sync now"),
		),
		Push: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "push quote"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
