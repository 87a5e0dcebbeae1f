package layout

import "testing"

func TestCalculateQuoteWidth(t *testing.T) {
	cfg := DefaultConfig().Quote

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"standard terminal", 60, 52}, // 60 - 8
		{"wide terminal capped", 200, 72},
		{"narrow terminal floored", 20, 20},
		{"exact max", 80, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateQuoteWidth(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateQuoteWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateWindowStart(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		total    int
		visible  int
		want     int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5}, // 10 - 10/2 = 5
		{"selection near end", 18, 20, 10, 10}, // max start = 20-10 = 10
		{"selection at end", 19, 20, 10, 10},
		{"all items visible", 5, 8, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWindowStart(tt.selected, tt.total, tt.visible)
			if got != tt.want {
				t.Errorf("CalculateWindowStart(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.visible, got, tt.want)
			}
		})
	}
}

func TestFormWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		terminalWidth int
		want          int
	}{
		{120, 60},
		{200, 80},
		{80, 50},
		{50, 46},
		{3, 1},
	}

	for _, tt := range tests {
		if got := FormWidth(tt.terminalWidth, cfg); got != tt.want {
			t.Errorf("FormWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
		}
	}
}
