// Package picker is a small TUI for choosing one quote out of search results.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Picker lets the user move through search results and choose one.
type Picker struct {
	results   []search.Result
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.results) > 0 {
				p.selected = true
			} else {
				p.cancelled = true
			}
			return p, tea.Quit

		case tea.KeyDown:
			p.move(1)
			return p, nil

		case tea.KeyUp:
			p.move(-1)
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.move(1)
			case "k":
				p.move(-1)
			case "g":
				p.cursor = 0
			case "G":
				p.cursor = max(len(p.results)-1, 0)
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next >= 0 && next < len(p.results) {
		p.cursor = next
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		fmt.Fprintf(&b, "%s%s\n", cursor, highlight(result.Quote.Text, result.MatchedIndexes, style))
		fmt.Fprintf(&b, "   %s\n", categoryStyle.Render(result.Quote.Category))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: select  q/Esc: cancel"))

	return b.String()
}

// highlight renders text with the fuzzy-matched runes emphasized.
func highlight(text string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(text)
	}

	hit := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hit[idx] = true
	}

	var b strings.Builder
	for i, r := range text {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Selected returns the chosen quote; ok is false if the user cancelled.
func (p Picker) Selected() (q model.Quote, ok bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return model.Quote{}, false
	}
	return p.results[p.cursor].Quote, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
