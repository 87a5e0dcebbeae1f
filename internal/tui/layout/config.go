package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Quote QuoteConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// QuoteConfig holds quote pane configuration.
type QuoteConfig struct {
	// MaxWidth caps the quote pane so long lines stay readable on wide terminals.
	MaxWidth int

	// MinWidth is the minimum quote pane width.
	MinWidth int

	// WidthOffset is subtracted from terminal width.
	// Accounts for: app padding (2+2) + pane borders (2) + pane padding (2) = 8
	WidthOffset int

	// CategoriesVisible is the max number of categories shown in the filter bar.
	CategoriesVisible int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TextCharLimit     int
	CategoryCharLimit int

	// StandardWidth is the display width of the add form inputs.
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Quote: QuoteConfig{
			MaxWidth:          72,
			MinWidth:          20,
			WidthOffset:       8,
			CategoriesVisible: 8,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  50,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  18,
			HelpRightColumnWidth: 20,
		},
		Input: InputConfig{
			TextCharLimit:     500,
			CategoryCharLimit: 50,
			StandardWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
