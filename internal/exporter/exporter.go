// Package exporter writes the quote collection to shareable files.
package exporter

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/quotes/internal/model"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// DefaultExportPath returns the default export file path for format.
// Format: ~/Downloads/quotes.json
func DefaultExportPath(format string) (string, error) {
	if format == "" {
		format = FormatJSON
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads", "quotes."+format), nil
}

// ExportJSON writes quotes as a JSON array indented by two spaces.
func ExportJSON(w io.Writer, quotes []model.Quote) error {
	if quotes == nil {
		quotes = []model.Quote{}
	}
	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ExportHTML renders quotes as a standalone HTML page, one blockquote per
// quote with its category in a data attribute.
func ExportHTML(quotes []model.Quote) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<title>Quotes</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>Quotes</h1>\n")

	for _, q := range quotes {
		fmt.Fprintf(&b,
			"<blockquote data-category=\"%s\"><p>%s</p><footer>%s</footer></blockquote>\n",
			html.EscapeString(q.Category),
			html.EscapeString(q.Text),
			html.EscapeString(q.Category),
		)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// Export writes quotes to w in the given format.
func Export(w io.Writer, quotes []model.Quote, format string) error {
	switch format {
	case "", FormatJSON:
		return ExportJSON(w, quotes)
	case FormatHTML:
		_, err := io.WriteString(w, ExportHTML(quotes))
		return err
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
