package supplier

// ExtractResult holds the text extracted from an HTML page.
type ExtractResult struct {
	// Title is the text of the page's title element.
	Title string

	// Text is the body text with scripts and styles removed and all
	// whitespace runs collapsed to a single space.
	Text string
}

// Extractor reduces raw HTML to title and body text.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
