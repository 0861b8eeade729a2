// Package slog decorates supplier capabilities with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/supplier"
)

// Ensure LoggingFetcher implements supplier.Fetcher.
var _ supplier.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every linked-page fetch. Successful fetches are
// logged at debug level since an aggregation issues one per link; failures
// are logged as warnings because the page is dropped from the corpus.
type LoggingFetcher struct {
	next   supplier.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next supplier.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		f.logger.Log(ctx, level, "fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
