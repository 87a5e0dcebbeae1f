package layout

// CalculateQuoteWidth computes the content width of the quote pane.
// Returns a value between MinWidth and MaxWidth.
func CalculateQuoteWidth(terminalWidth int, cfg QuoteConfig) int {
	width := terminalWidth - cfg.WidthOffset
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	return width
}

// CalculateWindowStart returns the first index of a window of size visible
// that keeps selected in view, roughly centered.
func CalculateWindowStart(selected, total, visible int) int {
	if total <= visible {
		return 0
	}

	start := selected - visible/2
	if start < 0 {
		start = 0
	}

	maxStart := total - visible
	if start > maxStart {
		start = maxStart
	}

	return start
}

// FormWidth sizes the add form: DefaultWidthPercent of the terminal, clamped
// to the modal bounds and never wider than the terminal minus a margin.
func FormWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.DefaultWidthPercent / 100
	width = max(width, cfg.MinWidth)
	width = min(width, cfg.MaxWidth, terminalWidth-4)
	return max(width, 1)
}
