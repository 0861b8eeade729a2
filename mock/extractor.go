package mock

import "github.com/fwojciec/supplier"

var _ supplier.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of supplier.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*supplier.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*supplier.ExtractResult, error) {
	return e.ExtractFn(html)
}
