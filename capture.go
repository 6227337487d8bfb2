package harvest

import (
	"context"
	"net/http"
)

// Snapshot is a page as rendered by a browser.
type Snapshot struct {
	URL       string
	HTML      string
	UserAgent string
}

// Renderer loads URLs in a browser and returns the rendered document.
type Renderer interface {
	// Render navigates to the URL, waits for it to load and returns the
	// rendered HTML. The context controls timeout and cancellation.
	Render(ctx context.Context, url string) (*Snapshot, error)

	// Close releases browser resources.
	Close() error
}

// Response is the raw result of an HTTP request.
type Response struct {
	URL        string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	RemoteIP   string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the response Content-Type header.
func (r *Response) ContentType() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Fetcher performs plain HTTP requests without rendering.
type Fetcher interface {
	// Fetch issues a GET request. Responses are returned whatever their
	// status; only transport failures are errors.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
