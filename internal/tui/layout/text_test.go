package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain quote", "Stay hungry.", "Stay hungry."},
		{"styled category", "\x1b[1;32m(Life)\x1b[0m", "(Life)"},
		{"styled breadcrumb", "quotes / \x1b[4mWork\x1b[0m", "quotes / Work"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "Inspiration", 20, "Inspiration"},
		{"exact", "Life", 4, "Life"},
		{"cut with ellipsis", "quotes / Motivation", 12, "quotes / ..."},
		{"no room for ellipsis", "Motivation", 2, "Mo"},
		{"zero width", "Life", 0, ""},
		{"wide runes", "こんにちは", 7, "こん..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.width, cfg); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
