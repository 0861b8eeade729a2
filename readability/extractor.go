// Package readability extracts the main article text of a page using
// go-readability, dropping navigation, sidebars and footers.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/supplier"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements supplier.Extractor at compile time.
var _ supplier.Extractor = (*Extractor)(nil)

// Extractor keeps only the main content block of a page. It suits long
// "about us" pages; short contact pages may come back with little text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and its whitespace-normalized text.
// When no main block is found the excerpt is used instead, and the site
// name stands in for a missing title.
func (e *Extractor) Extract(rawHTML string) (*supplier.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, supplier.Errorf(supplier.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	title := article.Title
	if title == "" {
		title = article.SiteName
	}
	text := supplier.NormalizeSpace(article.TextContent)
	if text == "" {
		text = supplier.NormalizeSpace(article.Excerpt)
	}

	return &supplier.ExtractResult{Title: title, Text: text}, nil
}
