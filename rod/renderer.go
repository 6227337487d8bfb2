package rod

import (
	"context"
	"time"

	"github.com/fwojciec/harvest"
)

// DefaultRenderTimeout is the default time budget for rendering one URL.
const DefaultRenderTimeout = 60 * time.Second

// Ensure Renderer implements harvest.Renderer at compile time.
var _ harvest.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML from URLs using a Browser.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	browser *Browser
	timeout time.Duration
	settle  time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderTimeout bounds each Render call. Defaults to DefaultRenderTimeout.
func WithRenderTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithSettle waits d after the load event so scripts can finish rendering.
func WithSettle(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.settle = d
	}
}

// NewRenderer creates a Renderer that takes ownership of browser.
// Closing the Renderer closes the browser.
func NewRenderer(browser *Browser, opts ...RendererOption) *Renderer {
	r := &Renderer{
		browser: browser,
		timeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to the URL and returns the rendered HTML together with
// the browser's user agent.
func (r *Renderer) Render(ctx context.Context, url string) (*harvest.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	page, err := r.browser.newPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.Navigate(ctx, url); err != nil {
		return nil, err
	}
	if err := page.Wait(ctx, r.settle); err != nil {
		return nil, err
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	ua, err := page.UserAgent(ctx)
	if err != nil {
		return nil, err
	}

	return &harvest.Snapshot{URL: url, HTML: html, UserAgent: ua}, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.browser.Close()
}
