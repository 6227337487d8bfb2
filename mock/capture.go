package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var (
	_ harvest.Renderer      = (*Renderer)(nil)
	_ harvest.Fetcher       = (*Fetcher)(nil)
	_ harvest.DomainLimiter = (*DomainLimiter)(nil)
)

// Renderer is a mock implementation of harvest.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (*harvest.Snapshot, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (*harvest.Snapshot, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

// Fetcher is a mock implementation of harvest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*harvest.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*harvest.Response, error) {
	return f.FetchFn(ctx, url)
}

// DomainLimiter is a mock implementation of harvest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
