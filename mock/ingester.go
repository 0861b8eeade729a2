package mock

import (
	"context"

	"github.com/fwojciec/supplier"
)

var (
	_ supplier.ProfileExtractor = (*ProfileExtractor)(nil)
	_ supplier.Ingester         = (*Ingester)(nil)
)

// ProfileExtractor is a mock implementation of supplier.ProfileExtractor.
type ProfileExtractor struct {
	ExtractProfileFn func(ctx context.Context, corpus, companyName string) (*supplier.Profile, error)
}

func (e *ProfileExtractor) ExtractProfile(ctx context.Context, corpus, companyName string) (*supplier.Profile, error) {
	return e.ExtractProfileFn(ctx, corpus, companyName)
}

// Ingester is a mock implementation of supplier.Ingester.
type Ingester struct {
	IngestFn func(ctx context.Context, req supplier.Request) (*supplier.Profile, error)
	RunFn    func(ctx context.Context, req supplier.Request) supplier.Result
}

func (i *Ingester) Ingest(ctx context.Context, req supplier.Request) (*supplier.Profile, error) {
	return i.IngestFn(ctx, req)
}

func (i *Ingester) Run(ctx context.Context, req supplier.Request) supplier.Result {
	return i.RunFn(ctx, req)
}
