package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/supplier"
)

// Ensure LoggingRenderer implements supplier.Renderer.
var _ supplier.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   supplier.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next supplier.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs what it found.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (page *supplier.RenderedPage, err error) {
	defer func(begin time.Time) {
		var texts, links int
		if page != nil {
			texts, links = len(page.Texts), len(page.Links)
		}
		r.logger.Info("render",
			"url", url,
			"texts", texts,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
