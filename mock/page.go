package mock

import (
	"context"
	"time"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var (
	_ harvest.Page    = (*Page)(nil)
	_ harvest.Element = (*Element)(nil)
	_ harvest.Browser = (*Browser)(nil)
)

// Page is a mock implementation of harvest.Page.
type Page struct {
	NavigateFn       func(ctx context.Context, url string) error
	HeightFn         func(ctx context.Context) (int, error)
	ViewportHeightFn func(ctx context.Context) (int, error)
	ScrollByFn       func(ctx context.Context, pixels int) error
	FindAllFn        func(ctx context.Context, selector string) ([]harvest.Element, error)
	ClickableFn      func(ctx context.Context, selector string, timeout time.Duration) (harvest.Element, bool, error)
	ClickFn          func(ctx context.Context, el harvest.Element, settle time.Duration) error
	WaitFn           func(ctx context.Context, d time.Duration) error
	CloseFn          func() error
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.NavigateFn(ctx, url)
}

func (p *Page) Height(ctx context.Context) (int, error) {
	return p.HeightFn(ctx)
}

func (p *Page) ViewportHeight(ctx context.Context) (int, error) {
	return p.ViewportHeightFn(ctx)
}

func (p *Page) ScrollBy(ctx context.Context, pixels int) error {
	return p.ScrollByFn(ctx, pixels)
}

func (p *Page) FindAll(ctx context.Context, selector string) ([]harvest.Element, error) {
	return p.FindAllFn(ctx, selector)
}

func (p *Page) Clickable(ctx context.Context, selector string, timeout time.Duration) (harvest.Element, bool, error) {
	return p.ClickableFn(ctx, selector, timeout)
}

func (p *Page) Click(ctx context.Context, el harvest.Element, settle time.Duration) error {
	return p.ClickFn(ctx, el, settle)
}

func (p *Page) Wait(ctx context.Context, d time.Duration) error {
	return p.WaitFn(ctx, d)
}

func (p *Page) Close() error {
	return p.CloseFn()
}

// Element is a mock implementation of harvest.Element.
type Element struct {
	HrefFn func(ctx context.Context) (string, error)
}

func (e *Element) Href(ctx context.Context) (string, error) {
	return e.HrefFn(ctx)
}

// LinkElement returns an Element whose Href always returns href.
func LinkElement(href string) *Element {
	return &Element{
		HrefFn: func(context.Context) (string, error) { return href, nil },
	}
}

// Browser is a mock implementation of harvest.Browser.
type Browser struct {
	OpenFn  func(ctx context.Context) (harvest.Page, error)
	CloseFn func() error
}

func (b *Browser) Open(ctx context.Context) (harvest.Page, error) {
	return b.OpenFn(ctx)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}
