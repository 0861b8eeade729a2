package crawl

import (
	"context"

	"github.com/fwojciec/supplier"
)

// PageFetcher retrieves a linked page and reduces it to a text fragment.
type PageFetcher struct {
	Fetcher   supplier.Fetcher
	Extractor supplier.Extractor
}

// FetchText downloads url and returns its title followed by its
// whitespace-normalized body text. Any failure is reported as EFETCH.
func (p *PageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", supplier.Errorf(supplier.EFETCH, "fetch %s: %v", url, err)
	}

	extracted, err := p.Extractor.Extract(html)
	if err != nil {
		return "", supplier.Errorf(supplier.EFETCH, "extract %s: %v", url, err)
	}

	return supplier.Fragment(extracted.Title, extracted.Text), nil
}
