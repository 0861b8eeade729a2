// Package trafilatura extracts the main text of a page using go-trafilatura.
package trafilatura

import (
	"fmt"
	"strings"

	"github.com/fwojciec/supplier"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements supplier.Extractor at compile time.
var _ supplier.Extractor = (*Extractor)(nil)

// Extractor keeps the main text of a page, including tables, which supplier
// sites often use for capability and contact listings. Comment sections
// are dropped.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and its whitespace-normalized main text.
// The site name stands in for a missing title.
func (e *Extractor) Extract(rawHTML string) (*supplier.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, supplier.Errorf(supplier.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}

	title := result.Metadata.Title
	if title == "" {
		title = result.Metadata.Sitename
	}

	text := result.ContentText
	if result.ContentNode != nil {
		text = nodeText(result.ContentNode)
	}

	return &supplier.ExtractResult{
		Title: title,
		Text:  supplier.NormalizeSpace(text),
	}, nil
}

// nodeText concatenates the text nodes under n, separating block
// boundaries with spaces.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			b.WriteByte(' ')
		}
	}
	walk(n)
	return b.String()
}
