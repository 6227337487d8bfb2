package explore

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// DefaultPollInterval is how often SelectorExtractor re-queries the page
// while waiting for matches.
const DefaultPollInterval = 500 * time.Millisecond

// Compile-time interface verification.
var _ harvest.LinkExtractor = (*SelectorExtractor)(nil)

// SelectorExtractor collects href targets of elements matching a CSS selector.
type SelectorExtractor struct {
	// Timeout bounds the wait for at least one match.
	// Defaults to harvest.DefaultExtractTimeout.
	Timeout time.Duration

	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration

	Logger *slog.Logger
}

// Extract waits for the selector to match, then returns the non-empty href
// targets of all matching elements. Timeouts and render failures yield an
// empty set.
func (e *SelectorExtractor) Extract(ctx context.Context, page harvest.Page, selector string) *harvest.LinkSet {
	links := harvest.NewLinkSet()
	logger := e.logger()

	elements, err := e.waitForElements(ctx, page, selector)
	if err != nil {
		logger.Error("extracting links", "selector", selector, "err", err)
		return links
	}

	for _, el := range elements {
		href, err := el.Href(ctx)
		if err != nil {
			logger.Debug("reading href", "selector", selector, "err", err)
			continue
		}
		links.Add(href)
	}

	logger.Info("extracted links", "selector", selector, "elements", len(elements), "links", links.Len())
	return links
}

// waitForElements polls until the selector matches something or the
// timeout budget is spent.
func (e *SelectorExtractor) waitForElements(ctx context.Context, page harvest.Page, selector string) ([]harvest.Element, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = harvest.DefaultExtractTimeout
	}
	poll := e.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	attempts := int(timeout / poll)
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		elements, err := page.FindAll(ctx, selector)
		if err != nil {
			return nil, err
		}
		if len(elements) > 0 {
			return elements, nil
		}
		if attempt >= attempts {
			return nil, harvest.Errorf(harvest.ERENDER, "no elements matched %q within %s", selector, timeout)
		}
		if err := page.Wait(ctx, poll); err != nil {
			return nil, err
		}
	}
}

func (e *SelectorExtractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}
