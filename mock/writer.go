package mock

import (
	"context"

	"github.com/fwojciec/supplier"
)

var _ supplier.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of supplier.ResultWriter.
type ResultWriter struct {
	WriteResultFn func(ctx context.Context, path string, result supplier.Result) error
}

func (w *ResultWriter) WriteResult(ctx context.Context, path string, result supplier.Result) error {
	return w.WriteResultFn(ctx, path, result)
}
