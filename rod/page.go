package rod

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/go-rod/rod"
)

// Ensure Page and Element implement the harvest interfaces at compile time.
var (
	_ harvest.Page    = (*Page)(nil)
	_ harvest.Element = (*Element)(nil)
)

// Page is a single browser tab. Browser failures are returned as ERENDER
// errors.
type Page struct {
	page    *rod.Page
	release func()
	once    sync.Once
}

// Navigate loads the URL and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return harvest.Errorf(harvest.ERENDER, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return harvest.Errorf(harvest.ERENDER, "waiting for %s to load: %v", url, err)
	}
	return nil
}

// Height returns the document's scroll height in pixels.
func (p *Page) Height(ctx context.Context) (int, error) {
	return p.evalInt(ctx, `() => document.body ? document.body.scrollHeight : 0`)
}

// ViewportHeight returns the window's inner height in pixels.
func (p *Page) ViewportHeight(ctx context.Context) (int, error) {
	return p.evalInt(ctx, `() => window.innerHeight`)
}

// ScrollBy scrolls the window down by pixels.
func (p *Page) ScrollBy(ctx context.Context, pixels int) error {
	if _, err := p.page.Context(ctx).Eval(`(dy) => window.scrollBy(0, dy)`, pixels); err != nil {
		return harvest.Errorf(harvest.ERENDER, "scrolling: %v", err)
	}
	return nil
}

// FindAll returns the elements currently matching selector without waiting.
func (p *Page) FindAll(ctx context.Context, selector string) ([]harvest.Element, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, harvest.Errorf(harvest.ERENDER, "querying %q: %v", selector, err)
	}
	out := make([]harvest.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{el: el})
	}
	return out, nil
}

// Clickable waits up to timeout for an element matching selector to be
// visible and enabled. It returns false with a nil error when the wait
// times out.
func (p *Page) Clickable(ctx context.Context, selector string, timeout time.Duration) (harvest.Element, bool, error) {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	el, err := page.Element(selector)
	if err == nil {
		err = el.WaitVisible()
	}
	if err == nil {
		err = el.WaitEnabled()
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, false, nil
		}
		return nil, false, harvest.Errorf(harvest.ERENDER, "waiting for %q: %v", selector, err)
	}

	return &Element{el: el.Context(ctx)}, true, nil
}

// Click scrolls the element into view, waits settle, then clicks it
// through JavaScript so overlays cannot intercept the click.
func (p *Page) Click(ctx context.Context, el harvest.Element, settle time.Duration) error {
	e, ok := el.(*Element)
	if !ok {
		return harvest.Errorf(harvest.EINVALID, "element %T does not belong to a browser page", el)
	}
	target := e.el.Context(ctx)

	if err := target.ScrollIntoView(); err != nil {
		return harvest.Errorf(harvest.ERENDER, "scrolling to control: %v", err)
	}
	if err := p.Wait(ctx, settle); err != nil {
		return err
	}
	if _, err := target.Eval(`() => this.click()`); err != nil {
		return harvest.Errorf(harvest.ERENDER, "clicking control: %v", err)
	}
	return nil
}

// Wait sleeps for d or until ctx is done.
func (p *Page) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// HTML returns the serialized document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", harvest.Errorf(harvest.ERENDER, "reading document: %v", err)
	}
	return html, nil
}

// UserAgent returns the user agent the page was loaded with.
func (p *Page) UserAgent(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`() => navigator.userAgent`)
	if err != nil {
		return "", harvest.Errorf(harvest.ERENDER, "reading user agent: %v", err)
	}
	return res.Value.Str(), nil
}

// Close closes the tab. Close is safe to call multiple times.
func (p *Page) Close() error {
	var err error
	p.once.Do(func() {
		err = p.page.Close()
		if p.release != nil {
			p.release()
		}
	})
	return err
}

func (p *Page) evalInt(ctx context.Context, js string) (int, error) {
	res, err := p.page.Context(ctx).Eval(js)
	if err != nil {
		return 0, harvest.Errorf(harvest.ERENDER, "evaluating %s: %v", js, err)
	}
	return res.Value.Int(), nil
}

// Element is a DOM element on a Page.
type Element struct {
	el *rod.Element
}

// Href returns the element's resolved link target, or an empty string if
// it has none.
func (e *Element) Href(ctx context.Context) (string, error) {
	res, err := e.el.Context(ctx).Eval(`() => {
		const h = this.href;
		if (typeof h === 'string') return h;
		return this.getAttribute('href') || '';
	}`)
	if err != nil {
		return "", harvest.Errorf(harvest.ERENDER, "reading href: %v", err)
	}
	return res.Value.Str(), nil
}
