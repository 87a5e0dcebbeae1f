// Package importer reads quote files produced by the exporter.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/quotes/internal/model"
	"golang.org/x/net/html"
)

// ParseJSON decodes a JSON array of quotes. Malformed input yields a
// *model.ParseError; items are not validated here.
func ParseJSON(r io.Reader) ([]model.Quote, error) {
	var quotes []model.Quote
	if err := json.NewDecoder(r).Decode(&quotes); err != nil {
		return nil, &model.ParseError{Source: "import", Err: err}
	}
	if quotes == nil {
		quotes = []model.Quote{}
	}
	return quotes, nil
}

// ParseHTML reads the blockquotes of an exported quotes page. The category
// comes from the data-category attribute, the text from the first paragraph.
func ParseHTML(r io.Reader) ([]model.Quote, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &model.ParseError{Source: "import", Err: err}
	}

	quotes := []model.Quote{}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "blockquote") {
			text := ""
			if p := findElement(n, "p"); p != nil {
				text = getTextContent(p)
			} else {
				text = getTextContent(n)
			}
			if text != "" {
				quotes = append(quotes, model.Quote{
					Text:     text,
					Category: strings.TrimSpace(getAttr(n, "data-category")),
				})
			}
			return // Don't recurse into blockquote
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return quotes, nil
}

// Parse decodes r according to format ("json" or "html").
func Parse(r io.Reader, format string) ([]model.Quote, error) {
	switch format {
	case "", "json":
		return ParseJSON(r)
	case "html":
		return ParseHTML(r)
	default:
		return nil, fmt.Errorf("unknown import format %q", format)
	}
}

// FormatFromPath guesses the import format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	default:
		return "json"
	}
}

func findElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, tag) {
			return c
		}
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
