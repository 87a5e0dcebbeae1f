package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App              lipgloss.Style
	Pane             lipgloss.Style
	Title            lipgloss.Style
	Quote            lipgloss.Style
	Category         lipgloss.Style
	Filter           lipgloss.Style
	FilterSelected   lipgloss.Style
	Help             lipgloss.Style
	Empty            lipgloss.Style
	HintKey          lipgloss.Style // Key portion of hints (e.g., "n", "f/F")
	HintDesc         lipgloss.Style // Description portion of hints (e.g., "new", "filter")
	HintLabel        lipgloss.Style // Row label in the help bar
	Breadcrumb       lipgloss.Style // App name and active filter above the quote
	MessageError     lipgloss.Style
	MessageWarning   lipgloss.Style
	MessageSuccess   lipgloss.Style
	MessageInfo      lipgloss.Style
	FormLabel        lipgloss.Style
	FormLabelFocused lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Quote: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Category: lipgloss.NewStyle().
			Italic(true).
			Foreground(subtle),

		Filter: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		FilterSelected: lipgloss.NewStyle().
			Padding(0, 1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(accent),

		Breadcrumb: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		MessageError: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		MessageWarning: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true),

		MessageSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),

		MessageInfo: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		FormLabel: lipgloss.NewStyle().
			Foreground(subtle),

		FormLabelFocused: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
	}
}
