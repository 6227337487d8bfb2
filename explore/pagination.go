package explore

import (
	"context"

	"github.com/fwojciec/harvest"
)

// paginate walks numbered pages built from the pagination template.
func (r *run) paginate(ctx context.Context) {
	s := r.state
	for s.Turn <= r.cfg.MaxPages {
		if r.canceled(ctx) {
			return
		}
		r.turns++

		url := r.cfg.PageURL(s.Turn)
		if err := r.page.Navigate(ctx, url); err != nil {
			// The extraction below comes back empty and counts
			// toward the no-new-links streak.
			r.logger.Warn("navigating", "url", url, "err", err)
		}

		delta := r.observe(ctx)
		s.recordDelta(delta)
		r.logger.Info("scraped page", "page", s.Turn, "url", url, "new", delta.Len())
		r.report(url, delta)

		if s.NoNewLinksStreak >= r.cfg.MaxNoNewLinksStreak {
			r.stop(harvest.StopNoNewLinks)
			return
		}

		s.Turn++
		if s.Turn <= r.cfg.MaxPages {
			r.wait(ctx, r.cfg.TurnDelay)
		}
	}
	r.stop(harvest.StopMaxPages)
}
