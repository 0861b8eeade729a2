package mock

import (
	"context"

	"github.com/fwojciec/supplier"
)

var _ supplier.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of supplier.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (*supplier.RenderedPage, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (*supplier.RenderedPage, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
