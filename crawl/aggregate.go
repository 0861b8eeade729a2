// Package crawl fans out over the links discovered on a company site and
// aggregates their text into a single bounded corpus.
package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/supplier"
)

// Ensure Aggregator implements supplier.Aggregator at compile time.
var _ supplier.Aggregator = (*Aggregator)(nil)

// OutcomeFunc is called once per link after its fetch settles.
type OutcomeFunc func(url string, fragment string, err error)

// Aggregator fetches every link concurrently and joins the successful
// fragments in the order they settle.
type Aggregator struct {
	Pages *PageFetcher

	// Concurrency caps in-flight fetches. Zero means one fetch per link.
	Concurrency int

	// Limit is the maximum corpus length in characters. Zero means
	// supplier.CorpusLimit.
	Limit int

	// OnOutcome, if set, observes each settled fetch.
	OnOutcome OutcomeFunc
}

// Aggregate returns the corpus built from links. Failed links are dropped;
// if none succeed the corpus is empty and no error is returned. The only
// error is ctx ending, in which case the partial corpus of the links that
// settled successfully is returned alongside it.
func (a *Aggregator) Aggregate(ctx context.Context, links []string) (string, error) {
	outcomes := SettleAll(ctx, len(links), a.Concurrency, func(ctx context.Context, i int) (string, error) {
		return a.Pages.FetchText(ctx, links[i])
	})

	corpus := a.join(links, outcomes)
	if err := ctx.Err(); err != nil {
		return corpus, fmt.Errorf("aggregate: %w", err)
	}
	return corpus, nil
}

func (a *Aggregator) join(links []string, outcomes []Outcome[string]) string {
	var b strings.Builder
	for _, outcome := range outcomes {
		if a.OnOutcome != nil {
			a.OnOutcome(links[outcome.Index], outcome.Value, outcome.Err)
		}
		if outcome.Err != nil {
			continue
		}
		b.WriteString(" ")
		b.WriteString(outcome.Value)
	}

	limit := a.Limit
	if limit <= 0 {
		limit = supplier.CorpusLimit
	}
	return supplier.Truncate(b.String(), limit)
}

// CorpusHash returns a short content hash identifying a corpus.
func CorpusHash(corpus string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(corpus))
}
