package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/harvest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is the default number of pages before browser recycling.
const DefaultRecycleAfter = 75

// Ensure Browser implements harvest.Browser at compile time.
var _ harvest.Browser = (*Browser)(nil)

// Browser manages a Chrome instance and hands out pages.
//
// Chrome accumulates memory over time and the baseline never returns to
// initial levels even with proper page cleanup, so the browser is relaunched
// after a number of pages. Recycling waits until no page is open.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	pageCount    int64
	recycleAfter int64
	headless     bool
	open         int
	mu           sync.Mutex
	closed       atomic.Bool
}

// Option configures a Browser.
type Option func(*Browser)

// WithRecycleAfter sets the number of pages opened before the browser is
// relaunched. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int64) Option {
	return func(b *Browser) {
		b.recycleAfter = n
	}
}

// WithHeadless controls whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(b *Browser) {
		b.headless = headless
	}
}

// NewBrowser launches a Chrome browser.
// Close must be called when the Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(opts ...Option) (*Browser, error) {
	b := &Browser{
		recycleAfter: DefaultRecycleAfter,
		headless:     true,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.launchBrowser(); err != nil {
		return nil, err
	}

	return b, nil
}

// Open returns a new blank page. The page must be closed by the caller.
func (b *Browser) Open(ctx context.Context) (harvest.Page, error) {
	return b.newPage(ctx)
}

func (b *Browser) newPage(ctx context.Context) (*Page, error) {
	if b.closed.Load() {
		return nil, harvest.Errorf(harvest.EINVALID, "browser is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open == 0 && atomic.LoadInt64(&b.pageCount) >= b.recycleAfter {
		b.recycleBrowser()
	}

	p, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}

	atomic.AddInt64(&b.pageCount, 1)
	b.open++
	return &Page{page: p, release: b.release}, nil
}

func (b *Browser) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open--
}

// Close releases browser resources. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
func (b *Browser) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(b.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (b *Browser) closeBrowser() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one.
// If launching the new browser fails, the old browser is kept.
// Must be called with mu held.
func (b *Browser) recycleBrowser() {
	oldBrowser := b.browser
	oldLauncher := b.launcher
	b.browser = nil
	b.launcher = nil

	if err := b.launchBrowser(); err != nil {
		b.browser = oldBrowser
		b.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&b.pageCount, 0)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
