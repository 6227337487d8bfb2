package crawl_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/fs"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfResponse(url string, body string) *harvest.Response {
	return &harvest.Response{
		URL:        url,
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": []string{"application/pdf"}},
		Body:       []byte(body),
	}
}

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{}

	t.Run("saves PDFs and skips other content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*harvest.Response, error) {
				switch url {
				case "https://example.go.id/a.pdf":
					return pdfResponse(url, "%PDF-1.4 a"), nil
				case "https://example.go.id/b":
					// Served as octet-stream but carries the signature.
					return &harvest.Response{
						StatusCode: 200,
						Header:     http.Header{"Content-Type": []string{"application/octet-stream"}},
						Body:       []byte("%PDF-1.7 b"),
					}, nil
				default:
					return &harvest.Response{
						StatusCode: 200,
						Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
						Body:       []byte("<html></html>"),
					}, nil
				}
			},
		}
		d := &crawl.Downloader{Fetcher: fetcher, RetryDelays: noDelays}

		result, err := d.Download(context.Background(), []string{
			"https://example.go.id/a.pdf",
			"https://example.go.id/b",
			"https://example.go.id/page.html",
		}, dir, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Skipped)
		assert.Zero(t, result.Failed)
		assert.Equal(t, int64(20), result.Bytes)

		data, err := os.ReadFile(filepath.Join(dir, fs.FileName("https://example.go.id/a.pdf")+".pdf"))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 a", string(data))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("retries server errors then succeeds", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*harvest.Response, error) {
				mu.Lock()
				defer mu.Unlock()
				calls++
				if calls == 1 {
					return &harvest.Response{StatusCode: 503, Status: "503 Service Unavailable"}, nil
				}
				if calls == 2 {
					return nil, errors.New("connection reset by peer")
				}
				return pdfResponse(url, "%PDF"), nil
			},
		}
		d := &crawl.Downloader{
			Fetcher:     fetcher,
			RetryDelays: []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond},
		}

		result, err := d.Download(context.Background(), []string{"https://example.go.id/a.pdf"}, t.TempDir(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*harvest.Response, error) {
				calls++
				return &harvest.Response{StatusCode: 404, Status: "404 Not Found"}, nil
			},
		}
		var failure error
		d := &crawl.Downloader{
			Fetcher:     fetcher,
			RetryDelays: []time.Duration{time.Millisecond, time.Millisecond},
		}

		result, err := d.Download(context.Background(), []string{"https://example.go.id/missing.pdf"}, t.TempDir(), func(ev crawl.ProgressEvent) {
			if ev.Type == crawl.ProgressFailed {
				failure = ev.Error
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, calls)
		require.Error(t, failure)
		assert.Contains(t, failure.Error(), "404 Not Found")
	})

	t.Run("failures never abort the pass", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*harvest.Response, error) {
				if url == "https://example.go.id/bad.pdf" {
					return nil, errors.New("no such host")
				}
				return pdfResponse(url, "%PDF"), nil
			},
		}
		d := &crawl.Downloader{Fetcher: fetcher, RetryDelays: noDelays}

		result, err := d.Download(context.Background(), []string{
			"https://example.go.id/1.pdf",
			"https://example.go.id/bad.pdf",
			"https://example.go.id/2.pdf",
		}, t.TempDir(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("waits on the rate limiter per domain", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				domains = append(domains, domain)
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*harvest.Response, error) {
				return pdfResponse(url, "%PDF"), nil
			},
		}
		d := &crawl.Downloader{Fetcher: fetcher, RateLimiter: limiter, RetryDelays: noDelays}

		_, err := d.Download(context.Background(), []string{
			"https://a.go.id/1.pdf",
			"https://b.go.id/2.pdf",
		}, t.TempDir(), nil)

		require.NoError(t, err)
		sort.Strings(domains)
		assert.Equal(t, []string{"a.go.id", "b.go.id"}, domains)
	})

	t.Run("limits concurrent fetches", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		inFlight, peak := 0, 0
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*harvest.Response, error) {
				mu.Lock()
				inFlight++
				peak = max(peak, inFlight)
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				inFlight--
				mu.Unlock()
				return pdfResponse(url, "%PDF"), nil
			},
		}
		d := &crawl.Downloader{Fetcher: fetcher, Concurrency: 2, RetryDelays: noDelays}

		links := []string{
			"https://example.go.id/1.pdf",
			"https://example.go.id/2.pdf",
			"https://example.go.id/3.pdf",
			"https://example.go.id/4.pdf",
			"https://example.go.id/5.pdf",
		}
		result, err := d.Download(context.Background(), links, t.TempDir(), nil)

		require.NoError(t, err)
		assert.Equal(t, 5, result.Saved)
		assert.LessOrEqual(t, peak, 2)
	})

	t.Run("reports progress for every link", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*harvest.Response, error) {
				return pdfResponse(url, "%PDF"), nil
			},
		}
		d := &crawl.Downloader{Fetcher: fetcher, RetryDelays: noDelays}
		var types []crawl.ProgressType

		_, err := d.Download(context.Background(), []string{
			"https://example.go.id/1.pdf",
			"https://example.go.id/2.pdf",
		}, t.TempDir(), func(ev crawl.ProgressEvent) {
			types = append(types, ev.Type)
		})

		require.NoError(t, err)
		assert.Equal(t, []crawl.ProgressType{
			crawl.ProgressStarted,
			crawl.ProgressCompleted,
			crawl.ProgressCompleted,
			crawl.ProgressFinished,
		}, types)
	})

	t.Run("returns cancellation with partial result", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*harvest.Response, error) {
				return pdfResponse(url, "%PDF"), nil
			},
		}
		d := &crawl.Downloader{Fetcher: fetcher, RetryDelays: noDelays}

		result, err := d.Download(ctx, []string{"https://example.go.id/1.pdf"}, t.TempDir(), nil)

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, result)
		assert.Zero(t, result.Saved)
	})
}

func TestIsPDF(t *testing.T) {
	t.Parallel()

	assert.True(t, crawl.IsPDF(&harvest.Response{Header: http.Header{"Content-Type": []string{"application/pdf"}}}))
	assert.True(t, crawl.IsPDF(&harvest.Response{Header: http.Header{"Content-Type": []string{"Application/PDF; name=x.pdf"}}}))
	assert.True(t, crawl.IsPDF(&harvest.Response{Body: []byte("%PDF-1.5")}))
	assert.False(t, crawl.IsPDF(&harvest.Response{Header: http.Header{"Content-Type": []string{"text/html"}}, Body: []byte("<html>")}))
}
