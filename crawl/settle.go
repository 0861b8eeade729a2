package crawl

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the settled result of one task passed to SettleAll.
type Outcome[T any] struct {
	// Index is the task's position in launch order.
	Index int
	// Seq is the order in which the task settled, starting at zero.
	Seq   int
	Value T
	Err   error
}

// TaskFunc is one unit of work run by SettleAll.
type TaskFunc[T any] func(ctx context.Context, i int) (T, error)

// SettleAll runs n tasks concurrently and waits for every one of them to
// settle. A failing task never cancels its siblings. Outcomes are returned in
// settlement order. A limit <= 0 runs all tasks at once.
func SettleAll[T any](ctx context.Context, n, limit int, fn TaskFunc[T]) []Outcome[T] {
	if n <= 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	outcomeCh := make(chan Outcome[T], n)

	go func() {
		for i := 0; i < n; i++ {
			g.Go(func() error {
				value, err := fn(gctx, i)
				outcomeCh <- Outcome[T]{Index: i, Value: value, Err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	outcomes := make([]Outcome[T], 0, n)
	for outcome := range outcomeCh {
		outcome.Seq = len(outcomes)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
