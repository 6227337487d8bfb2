package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingExplorer implements harvest.Explorer.
var _ harvest.Explorer = (*LoggingExplorer)(nil)

// LoggingExplorer wraps an Explorer with logging of each run's outcome.
type LoggingExplorer struct {
	next   harvest.Explorer
	logger *slog.Logger
}

// NewLoggingExplorer creates a new LoggingExplorer.
func NewLoggingExplorer(next harvest.Explorer, logger *slog.Logger) *LoggingExplorer {
	return &LoggingExplorer{next: next, logger: logger}
}

// Explore delegates to the wrapped explorer and logs the result.
func (e *LoggingExplorer) Explore(ctx context.Context, cfg harvest.ExplorationConfig) (result *harvest.ExplorationResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", cfg.StartURL,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"mode", result.Mode,
				"turns", result.Turns,
				"links", len(result.Links),
				"stop", result.StopReason,
			)
		}
		attrs = append(attrs, "err", err)
		e.logger.Info("explore", attrs...)
	}(time.Now())
	return e.next.Explore(ctx, cfg)
}
