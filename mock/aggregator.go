package mock

import (
	"context"

	"github.com/fwojciec/supplier"
)

var _ supplier.Aggregator = (*Aggregator)(nil)

// Aggregator is a mock implementation of supplier.Aggregator.
type Aggregator struct {
	AggregateFn func(ctx context.Context, links []string) (string, error)
}

func (a *Aggregator) Aggregate(ctx context.Context, links []string) (string, error) {
	return a.AggregateFn(ctx, links)
}
