// Package goquery extracts page text and links from raw HTML using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/supplier"
)

// Ensure Extractor implements supplier.Extractor at compile time.
var _ supplier.Extractor = (*Extractor)(nil)

// Extractor reads the title and the visible body text of a page.
// Script and style contents are discarded.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and its whitespace-normalized body text.
func (e *Extractor) Extract(rawHTML string) (*supplier.ExtractResult, error) {
	if rawHTML == "" {
		return nil, supplier.Errorf(supplier.EINVALID, "empty HTML input")
	}

	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	title := doc.Find("title").Text()
	doc.Find("script, style").Remove()

	return &supplier.ExtractResult{
		Title: title,
		Text:  supplier.NormalizeSpace(doc.Find("body").Text()),
	}, nil
}

// ExtractTexts returns the trimmed, non-empty text of every element under
// the body in document order, ignoring script and style contents.
func ExtractTexts(rawHTML string) ([]string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}
	doc.Find("script, style, noscript, template").Remove()

	var texts []string
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts, nil
}

// ExtractLinks returns the absolute target of every anchor in document
// order, resolved against pageURL. Non-HTTP links (javascript:, mailto:,
// tel:, data:) are skipped. Duplicates are kept.
func ExtractLinks(rawHTML string, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, supplier.Errorf(supplier.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	// A <base href> changes what relative links resolve against.
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if isNonHTTPLink(href) {
			return
		}
		if resolved := resolveURL(base, href); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

func parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, supplier.Errorf(supplier.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// resolveURL resolves href against base the way a browser resolves an
// anchor's href property. Returns empty string if href cannot be parsed or
// does not resolve to an http(s) URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
