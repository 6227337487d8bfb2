package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingBrowser and LoggingPage implement the harvest interfaces.
var (
	_ harvest.Browser = (*LoggingBrowser)(nil)
	_ harvest.Page    = (*LoggingPage)(nil)
)

// LoggingBrowser wraps a Browser so that every page it opens is logged.
type LoggingBrowser struct {
	next   harvest.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next harvest.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Open logs the call and wraps the returned page in a LoggingPage.
func (b *LoggingBrowser) Open(ctx context.Context) (page harvest.Page, err error) {
	defer func(begin time.Time) {
		b.logger.Info("open page",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	page, err = b.next.Open(ctx)
	if err != nil {
		return nil, err
	}
	return NewLoggingPage(page, b.logger), nil
}

// Close delegates to the wrapped browser.
func (b *LoggingBrowser) Close() error {
	return b.next.Close()
}

// LoggingPage wraps a Page with debug logging of every browser action.
type LoggingPage struct {
	next   harvest.Page
	logger *slog.Logger
}

// NewLoggingPage creates a new LoggingPage.
func NewLoggingPage(next harvest.Page, logger *slog.Logger) *LoggingPage {
	return &LoggingPage{next: next, logger: logger}
}

func (p *LoggingPage) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		p.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Navigate(ctx, url)
}

func (p *LoggingPage) Height(ctx context.Context) (height int, err error) {
	defer func() {
		p.logger.Debug("height", "height", height, "err", err)
	}()
	return p.next.Height(ctx)
}

func (p *LoggingPage) ViewportHeight(ctx context.Context) (height int, err error) {
	defer func() {
		p.logger.Debug("viewport height", "height", height, "err", err)
	}()
	return p.next.ViewportHeight(ctx)
}

func (p *LoggingPage) ScrollBy(ctx context.Context, pixels int) (err error) {
	defer func() {
		p.logger.Debug("scroll", "pixels", pixels, "err", err)
	}()
	return p.next.ScrollBy(ctx, pixels)
}

func (p *LoggingPage) FindAll(ctx context.Context, selector string) (els []harvest.Element, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("find all",
			"selector", selector,
			"count", len(els),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.FindAll(ctx, selector)
}

func (p *LoggingPage) Clickable(ctx context.Context, selector string, timeout time.Duration) (el harvest.Element, ok bool, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("clickable",
			"selector", selector,
			"found", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Clickable(ctx, selector, timeout)
}

func (p *LoggingPage) Click(ctx context.Context, el harvest.Element, settle time.Duration) (err error) {
	defer func(begin time.Time) {
		p.logger.Info("click",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Click(ctx, el, settle)
}

func (p *LoggingPage) Wait(ctx context.Context, d time.Duration) error {
	return p.next.Wait(ctx, d)
}

func (p *LoggingPage) Close() (err error) {
	defer func() {
		p.logger.Debug("close page", "err", err)
	}()
	return p.next.Close()
}
