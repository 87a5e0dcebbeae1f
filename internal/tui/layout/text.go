package layout

import "github.com/charmbracelet/x/ansi"

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Truncate shortens s to at most width terminal cells. The ellipsis is only
// appended when there is room for it and at least one cell of text.
func Truncate(s string, width int, cfg TextConfig) string {
	if width <= 0 {
		return ""
	}
	if width <= ansi.StringWidth(cfg.Ellipsis) {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, cfg.Ellipsis)
}
