// Package explore implements link discovery over listing pages.
// An Explorer drives one browser page through templated pagination or
// through in-page controls ("next", "load more") and infinite scroll,
// collecting links until one of its stopping heuristics fires.
package explore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.Explorer = (*Explorer)(nil)

// Explorer discovers links by driving pages obtained from Browser.
// One Explore call owns one page session for its whole duration.
type Explorer struct {
	Browser harvest.Browser

	// Extractor defaults to a SelectorExtractor using the run's ExtractTimeout.
	Extractor harvest.LinkExtractor

	// Logger receives recovered failures. Defaults to discarding them.
	Logger *slog.Logger

	// Progress, if set, is called once per executed turn.
	Progress ProgressFunc
}

// TurnEvent reports the state of an exploration after a turn.
type TurnEvent struct {
	Mode             harvest.Mode
	Turn             int
	URL              string
	NewLinks         int
	TotalLinks       int
	NoNewLinksStreak int
	NoLoadMoreStreak int
}

// ProgressFunc is a callback for reporting exploration progress.
type ProgressFunc func(event TurnEvent)

// Explore runs one exploration. Configuration errors are returned before a
// page is opened; browser failures afterwards are absorbed. When ctx is
// canceled the links collected so far are returned together with ctx.Err().
func (e *Explorer) Explore(ctx context.Context, cfg harvest.ExplorationConfig) (*harvest.ExplorationResult, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	page, err := e.Browser.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	r := &run{
		cfg:       cfg,
		page:      page,
		extractor: e.extractor(cfg),
		logger:    e.logger(),
		progress:  e.Progress,
		state:     newState(),
	}
	defer func() {
		if err := page.Close(); err != nil {
			r.logger.Warn("closing page", "err", err)
		}
	}()

	if cfg.Paginated() {
		r.mode = harvest.ModePagination
		r.paginate(ctx)
	} else {
		r.mode = harvest.ModeInteractive
		r.interact(ctx)
	}

	result := &harvest.ExplorationResult{
		Links:      r.state.Links(),
		Mode:       r.mode,
		Turns:      r.turns,
		StopReason: r.stopReason,
	}
	if r.stopReason == harvest.StopCanceled {
		return result, ctx.Err()
	}
	return result, nil
}

func (e *Explorer) extractor(cfg harvest.ExplorationConfig) harvest.LinkExtractor {
	if e.Extractor != nil {
		return e.Extractor
	}
	return &SelectorExtractor{
		Timeout: cfg.ExtractTimeout,
		Logger:  e.logger(),
	}
}

func (e *Explorer) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// run carries one exploration's collaborators and mutable state.
type run struct {
	cfg       harvest.ExplorationConfig
	page      harvest.Page
	extractor harvest.LinkExtractor
	logger    *slog.Logger
	progress  ProgressFunc

	mode       harvest.Mode
	state      *State
	turns      int
	stopReason harvest.StopReason
}

// observe extracts the current view and feeds it to the collector.
func (r *run) observe(ctx context.Context) *harvest.LinkSet {
	current := r.extractor.Extract(ctx, r.page, r.cfg.LinkSelector)
	return r.state.Observe(current)
}

// activate locates the control, clicks it and waits for content to settle.
// It reports whether the control was activated.
func (r *run) activate(ctx context.Context, selector string) bool {
	el, ok, err := r.page.Clickable(ctx, selector, r.cfg.ControlTimeout)
	if err != nil {
		r.logger.Warn("locating control", "selector", selector, "err", err)
		return false
	}
	if !ok {
		r.logger.Info("control not found", "selector", selector, "timeout", r.cfg.ControlTimeout)
		return false
	}
	if err := r.page.Click(ctx, el, r.cfg.ClickSettle); err != nil {
		r.logger.Warn("clicking control", "selector", selector, "err", err)
		return false
	}
	r.wait(ctx, r.cfg.AfterClickDelay)
	return true
}

// wait pauses between actions. Cancellation is picked up at the top of the
// next turn, so the error is only logged.
func (r *run) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	if err := r.page.Wait(ctx, d); err != nil {
		r.logger.Debug("wait interrupted", "err", err)
	}
}

// canceled reports whether the run must stop because ctx is done.
func (r *run) canceled(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	r.stop(harvest.StopCanceled)
	return true
}

func (r *run) stop(reason harvest.StopReason) {
	r.stopReason = reason
	r.logger.Info("exploration stopped",
		"mode", r.mode,
		"reason", reason,
		"turns", r.turns,
		"links", r.state.Collected.Len(),
	)
}

func (r *run) report(url string, delta *harvest.LinkSet) {
	if r.progress == nil {
		return
	}
	r.progress(TurnEvent{
		Mode:             r.mode,
		Turn:             r.state.Turn,
		URL:              url,
		NewLinks:         delta.Len(),
		TotalLinks:       r.state.Collected.Len(),
		NoNewLinksStreak: r.state.NoNewLinksStreak,
		NoLoadMoreStreak: r.state.NoLoadMoreStreak,
	})
}
