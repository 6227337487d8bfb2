package harvest

import (
	"context"
	"time"
)

// Element is a handle to an element in a rendered page.
type Element interface {
	// Href returns the element's resolved target address.
	// Returns an empty string if the element has none.
	Href(ctx context.Context) (string, error)
}

// Page is a remote-controlled rendering surface: one browser tab.
// Every method fails with an ERENDER error when the underlying session
// errors, times out, or the page is gone.
type Page interface {
	// Navigate loads the URL and waits for the page to load.
	Navigate(ctx context.Context, url string) error

	// Height returns the current scrollable height of the document.
	Height(ctx context.Context) (int, error)

	// ViewportHeight returns the height of the visible viewport.
	ViewportHeight(ctx context.Context) (int, error)

	// ScrollBy scrolls the window down by the given number of pixels.
	ScrollBy(ctx context.Context, pixels int) error

	// FindAll returns the elements currently matching the CSS selector.
	// It does not wait for elements to appear.
	FindAll(ctx context.Context, selector string) ([]Element, error)

	// Clickable waits up to timeout for an element matching the selector
	// to be present and visible. The bool result is false if no such
	// element appeared in time.
	Clickable(ctx context.Context, selector string, timeout time.Duration) (Element, bool, error)

	// Click scrolls the element into view, waits for settle, then activates it.
	Click(ctx context.Context, el Element, settle time.Duration) error

	// Wait blocks for the duration or until the context is done.
	Wait(ctx context.Context, d time.Duration) error

	// Close releases the page.
	Close() error
}

// Browser hands out page sessions.
type Browser interface {
	// Open creates a new page session. The caller owns the page and must
	// close it.
	Open(ctx context.Context) (Page, error)

	// Close releases browser resources.
	// Must be called when the Browser is no longer needed.
	Close() error
}
