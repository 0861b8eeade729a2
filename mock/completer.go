package mock

import (
	"context"

	"github.com/fwojciec/supplier"
)

var _ supplier.Completer = (*Completer)(nil)

// Completer is a mock implementation of supplier.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, messages []supplier.Message) (string, error)
}

func (c *Completer) Complete(ctx context.Context, messages []supplier.Message) (string, error) {
	return c.CompleteFn(ctx, messages)
}
