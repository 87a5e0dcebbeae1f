package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/quotes/internal/tui/layout"
)

// Mode is the current interaction mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeHelp
)

// MessageType determines how the status message is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Form field indexes.
const (
	fieldText = iota
	fieldCategory
	fieldCount
)

// AddFormState holds the two inputs of the add quote form.
type AddFormState struct {
	TextInput     textinput.Model
	CategoryInput textinput.Model
	Focus         int    // fieldText or fieldCategory
	Error         string // validation message shown inside the form
}

// NewAddFormState creates an AddFormState with initialized inputs.
func NewAddFormState(cfg layout.LayoutConfig) AddFormState {
	textInput := textinput.New()
	textInput.Placeholder = "Enter a new quote"
	textInput.CharLimit = cfg.Input.TextCharLimit
	textInput.Width = cfg.Input.StandardWidth

	categoryInput := textinput.New()
	categoryInput.Placeholder = "Enter quote category"
	categoryInput.CharLimit = cfg.Input.CategoryCharLimit
	categoryInput.Width = cfg.Input.StandardWidth

	return AddFormState{
		TextInput:     textInput,
		CategoryInput: categoryInput,
	}
}

// Reset clears both inputs and focuses the text input.
func (f *AddFormState) Reset() {
	f.TextInput.Reset()
	f.CategoryInput.Reset()
	f.Error = ""
	f.setFocus(fieldText)
}

// Values returns the raw input values.
func (f AddFormState) Values() (text, category string) {
	return f.TextInput.Value(), f.CategoryInput.Value()
}

// Cycle moves focus by delta, wrapping around.
func (f *AddFormState) Cycle(delta int) {
	f.setFocus(((f.Focus+delta)%fieldCount + fieldCount) % fieldCount)
}

func (f *AddFormState) setFocus(field int) {
	f.Focus = field
	if field == fieldText {
		f.TextInput.Focus()
		f.CategoryInput.Blur()
	} else {
		f.TextInput.Blur()
		f.CategoryInput.Focus()
	}
}

// FilterState tracks the category index and selected filter.
type FilterState struct {
	Categories []string // "all" first
	Selection  string
}

// Index returns the position of Selection in Categories, -1 if absent.
func (f FilterState) Index() int {
	for i, c := range f.Categories {
		if c == f.Selection {
			return i
		}
	}
	return -1
}

// Step returns the category delta positions away from the current one,
// wrapping around. An unknown selection steps from the start.
func (f FilterState) Step(delta int) string {
	n := len(f.Categories)
	if n == 0 {
		return f.Selection
	}
	idx := f.Index()
	if idx < 0 {
		idx = 0
		if delta > 0 {
			delta--
		}
	}
	return f.Categories[((idx+delta)%n+n)%n]
}
