package goquery

import (
	"context"

	"github.com/fwojciec/supplier"
)

// Ensure StaticRenderer implements supplier.Renderer at compile time.
var _ supplier.Renderer = (*StaticRenderer)(nil)

// StaticRenderer renders pages without a browser: it downloads the raw
// HTML and reads texts and links from it. Content produced by JavaScript
// is not seen.
type StaticRenderer struct {
	Fetcher supplier.Fetcher
}

// NewStaticRenderer creates a StaticRenderer that downloads through f.
func NewStaticRenderer(f supplier.Fetcher) *StaticRenderer {
	return &StaticRenderer{Fetcher: f}
}

// Render fetches url and collects its texts and links.
func (r *StaticRenderer) Render(ctx context.Context, url string) (*supplier.RenderedPage, error) {
	rawHTML, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "navigate %s: %v", url, err)
	}

	texts, err := ExtractTexts(rawHTML)
	if err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "collect texts %s: %v", url, err)
	}

	hrefs, err := ExtractLinks(rawHTML, url)
	if err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "collect links %s: %v", url, err)
	}

	return &supplier.RenderedPage{
		URL:   url,
		Texts: texts,
		Links: supplier.UniqueLinks(hrefs, supplier.DiscoveredLinkLimit),
	}, nil
}

// Close closes the underlying fetcher.
func (r *StaticRenderer) Close() error {
	return r.Fetcher.Close()
}
