package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/tui/layout"
)

func (a App) renderView() string {
	switch a.mode {
	case ModeAdd:
		return a.renderAddForm()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	quoteWidth := layout.CalculateQuoteWidth(a.width, a.layoutConfig.Quote)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderBreadcrumb(),
			a.renderQuotePane(quoteWidth),
			a.renderFilterBar(),
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderBreadcrumb renders the app name and active filter above the quote.
func (a App) renderBreadcrumb() string {
	path := "quotes"
	if a.filter.Selection != model.AllCategories {
		path += " / " + a.filter.Selection
	}

	availableWidth := a.width - 4
	path = layout.Truncate(path, availableWidth, a.layoutConfig.Text)

	return a.styles.Breadcrumb.Render(path)
}

// renderQuotePane renders the current quote inside a bordered pane.
func (a App) renderQuotePane(width int) string {
	var body string
	if a.hasQuote {
		text := a.styles.Quote.Width(width).Render(a.current.Text)
		category := a.styles.Category.Width(width).Align(lipgloss.Right).Render("(" + a.current.Category + ")")
		body = lipgloss.JoinVertical(lipgloss.Left, text, "", category)
	} else {
		body = a.styles.Empty.Width(width).Render(a.emptyText())
	}
	return a.styles.Pane.Render(body)
}

func (a App) emptyText() string {
	if a.store.Len() == 0 {
		return "No quotes yet. Press a to add one."
	}
	return fmt.Sprintf("No quotes in %q.", a.filter.Selection)
}

// renderFilterBar renders the category index with the selection highlighted.
func (a App) renderFilterBar() string {
	cats := a.filter.Categories
	visible := a.layoutConfig.Quote.CategoriesVisible

	selected := a.filter.Index()
	start := layout.CalculateWindowStart(max(selected, 0), len(cats), visible)
	end := min(start+visible, len(cats))

	parts := make([]string, 0, end-start+2)
	if start > 0 {
		parts = append(parts, a.styles.Filter.Render("<"))
	}
	for i := start; i < end; i++ {
		name := layout.Truncate(cats[i], 20, a.layoutConfig.Text)
		if i == selected {
			parts = append(parts, a.styles.FilterSelected.Render(name))
		} else {
			parts = append(parts, a.styles.Filter.Render(name))
		}
	}
	if end < len(cats) {
		parts = append(parts, a.styles.Filter.Render(">"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, a.renderStatus())

	if hints := a.renderHints(a.getContextualHints().All()); hints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Keys   ")+hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var style lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		style, prefix = a.styles.MessageError, "✗ "
	case MessageWarning:
		style, prefix = a.styles.MessageWarning, "⚠ "
	case MessageSuccess:
		style, prefix = a.styles.MessageSuccess, "✓ "
	default:
		style = a.styles.MessageInfo
	}

	text := layout.Truncate(prefix+a.messageText, a.width-4, a.layoutConfig.Text)
	return style.Render(text)
}

// renderStatus renders the [quotes:N] [sync:X] indicators.
func (a App) renderStatus() string {
	var status strings.Builder

	status.WriteString(a.styles.HintLabel.Render("Status "))
	fmt.Fprintf(&status, "[quotes:%d]", a.store.Len())

	switch {
	case a.syncer == nil:
		status.WriteString(" [sync:off]")
	case a.syncing:
		status.WriteString(" [sync:running]")
	default:
		status.WriteString(" [sync:" + a.syncer.State().String() + "]")
	}

	return status.String()
}

// renderAddForm renders the add quote modal.
func (a App) renderAddForm() string {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.FormWidth(a.width, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	label := func(field int, text string) string {
		if a.form.Focus == field {
			return a.styles.FormLabelFocused.Render(text)
		}
		return a.styles.FormLabel.Render(text)
	}

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Add Quote"))
	content.WriteString("\n\n")
	content.WriteString(label(fieldText, "Quote:"))
	content.WriteString("\n")
	content.WriteString(a.form.TextInput.View())
	content.WriteString("\n\n")
	content.WriteString(label(fieldCategory, "Category:"))
	content.WriteString("\n")
	content.WriteString(a.form.CategoryInput.View())

	if a.form.Error != "" {
		content.WriteString("\n\n")
		content.WriteString(a.styles.MessageError.Render(a.form.Error))
	}

	content.WriteString("\n\n")
	content.WriteString(a.renderHintsInline(a.getContextualHints().All()))

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content.String()),
	)
}

// renderHelpOverlay renders the full key reference.
func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("view") + "\n")
	left.WriteString("n    new quote\n")
	left.WriteString("f/l  next category\n")
	left.WriteString("F/h  prev category\n")
	left.WriteString("0    all\n")
	left.WriteString("y    yank quote\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add quote\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("sync") + "\n")
	right.WriteString("s    sync now\n")
	right.WriteString("p    push quote\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
