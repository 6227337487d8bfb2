package explore

import (
	"context"

	"github.com/fwojciec/harvest"
)

// interact reveals content on the start page through controls and scrolling.
//
// Each turn evaluates its guards in a fixed order: load-more first (its
// streak can end the run before anything else happens), then scroll with
// the no-new-links streak, then the next control.
func (r *run) interact(ctx context.Context) {
	if err := r.page.Navigate(ctx, r.cfg.StartURL); err != nil {
		r.logger.Warn("navigating", "url", r.cfg.StartURL, "err", err)
	}

	s := r.state
	for s.Turn <= r.cfg.MaxPages {
		if r.canceled(ctx) {
			return
		}
		r.turns++

		turnDelta := harvest.NewLinkSet()

		if !r.loadMoreGuard(ctx, turnDelta) {
			r.report("", turnDelta)
			r.stop(harvest.StopNoLoadMore)
			return
		}

		if !r.scrollGuard(ctx, turnDelta) {
			r.report("", turnDelta)
			r.stop(harvest.StopNoNewLinks)
			return
		}

		if r.cfg.LoadMoreControlSelector == "" && !r.cfg.ScrollEnabled {
			turnDelta.Merge(r.observe(ctx))
		}

		r.logger.Info("scraped page", "page", s.Turn, "new", turnDelta.Len())
		r.report("", turnDelta)

		r.wait(ctx, r.cfg.TurnDelay)
		s.Turn++

		if !r.nextGuard(ctx) {
			r.stop(harvest.StopNoNextControl)
			return
		}
	}
	r.stop(harvest.StopMaxPages)
}

// loadMoreGuard clicks the "load more" control when one is configured.
// It returns false once the control has been missing for
// MaxNoLoadMoreStreak consecutive turns.
func (r *run) loadMoreGuard(ctx context.Context, turnDelta *harvest.LinkSet) bool {
	selector := r.cfg.LoadMoreControlSelector
	if selector == "" {
		return true
	}

	s := r.state
	if !r.activate(ctx, selector) {
		s.NoLoadMoreStreak++
		r.logger.Info("no load more control", "attempts", s.NoLoadMoreStreak)
		return s.NoLoadMoreStreak < r.cfg.MaxNoLoadMoreStreak
	}

	delta := r.observe(ctx)
	turnDelta.Merge(delta)
	s.NoLoadMoreStreak = 0
	r.logger.Info("clicked load more", "new", delta.Len())
	return true
}

// scrollGuard scrolls to trigger lazy loading when enabled. It returns false
// once MaxNoNewLinksStreak consecutive turns revealed nothing new.
func (r *run) scrollGuard(ctx context.Context, turnDelta *harvest.LinkSet) bool {
	if !r.cfg.ScrollEnabled {
		return true
	}

	steps, err := Scroll(ctx, r.page, r.cfg.Scroll)
	if err != nil {
		r.logger.Warn("scrolling", "steps", steps, "err", err)
	}

	delta := r.observe(ctx)
	turnDelta.Merge(delta)

	// The streak follows what scrolling revealed, not the load-more click.
	s := r.state
	s.recordDelta(delta)
	r.logger.Info("scrolled", "steps", steps, "new", delta.Len())
	return s.NoNewLinksStreak < r.cfg.MaxNoNewLinksStreak
}

// nextGuard advances through the next control when one is configured.
// A missing control ends the run regardless of the streak counters. Once
// the page cap is reached the control is left alone.
func (r *run) nextGuard(ctx context.Context) bool {
	selector := r.cfg.NextControlSelector
	if selector == "" || r.state.Turn > r.cfg.MaxPages {
		return true
	}
	if !r.activate(ctx, selector) {
		return false
	}
	r.state.Turn++
	return true
}
