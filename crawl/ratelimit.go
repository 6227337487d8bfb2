package crawl

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/harvest"
	"golang.org/x/time/rate"
)

var _ harvest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to each host with its own token bucket.
// Hosts are matched case-insensitively.
type DomainLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter returns a DomainLimiter allowing rps requests per second
// to each host, without bursts. rps <= 0 means unlimited.
func NewDomainLimiter(rps float64) *DomainLimiter {
	d := &DomainLimiter{
		limit:   rate.Inf,
		buckets: make(map[string]*rate.Limiter),
	}
	if rps > 0 {
		d.limit = rate.Limit(rps)
	}
	return d
}

// Wait blocks until a request to domain may proceed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.bucket(strings.ToLower(domain)).Wait(ctx)
}

func (d *DomainLimiter) bucket(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[domain]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[domain] = b
	}
	return b
}

// Domain returns the lower-cased host of rawURL without its port. Values
// that do not parse as URLs with a host are returned unchanged.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.ToLower(u.Hostname())
}
