package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/supplier"
)

// Ensure LoggingCompleter implements supplier.Completer.
var _ supplier.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging.
type LoggingCompleter struct {
	next   supplier.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next supplier.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs prompt and reply sizes.
func (c *LoggingCompleter) Complete(ctx context.Context, messages []supplier.Message) (content string, err error) {
	defer func(begin time.Time) {
		var prompt int
		for _, m := range messages {
			prompt += len(m.Content)
		}
		c.logger.Info("completion",
			"messages", len(messages),
			"prompt_bytes", prompt,
			"reply_bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, messages)
}
