// Package crawl runs the downstream passes over harvested links: PDF
// downloads over plain HTTP and WARC captures through a browser.
package crawl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/fs"
	"golang.org/x/sync/errgroup"
)

// DefaultDownloadConcurrency is the number of downloads in flight.
const DefaultDownloadConcurrency = 3

// Downloader fetches PDF documents and stores them in a directory.
type Downloader struct {
	Fetcher     harvest.Fetcher
	RateLimiter harvest.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// DownloadResult holds the outcome of a download pass.
type DownloadResult struct {
	Saved   int
	Skipped int
	Failed  int
	Bytes   int64
}

// statusError is a non-2xx HTTP response.
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	if e.status == "" {
		return fmt.Sprintf("HTTP %d", e.code)
	}
	return "HTTP " + e.status
}

// Download fetches every link and writes PDFs to dir as <name>.pdf. Links
// that do not serve a PDF are skipped; failures are counted and never stop
// the pass. Only cancellation is returned as an error, together with the
// partial result.
func (d *Downloader) Download(ctx context.Context, links []string, dir string, progress ProgressFunc) (*DownloadResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultDownloadConcurrency
	}
	total := len(links)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	result := &DownloadResult{}
	var completed atomic.Int64
	events := make(chan ProgressEvent, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, link := range links {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				o, n, err := d.downloadOne(gctx, link, dir)
				events <- ProgressEvent{
					Type:      o.progressType(),
					Completed: int(completed.Add(1)),
					Total:     total,
					URL:       link,
					Bytes:     n,
					Error:     err,
				}
				return nil
			})
		}
		_ = g.Wait()
		close(events)
	}()

	for ev := range events {
		switch ev.Type {
		case ProgressCompleted:
			result.Saved++
			result.Bytes += ev.Bytes
		case ProgressSkipped:
			result.Skipped++
		default:
			result.Failed++
			d.logger().Warn("download failed", "url", ev.URL, "err", ev.Error)
		}
		if progress != nil {
			progress(ev)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})
	}
	return result, ctx.Err()
}

func (d *Downloader) downloadOne(ctx context.Context, link, dir string) (outcome, int64, error) {
	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	resp, err := Retry(ctx, delays, func(ctx context.Context) (*harvest.Response, error) {
		if d.RateLimiter != nil {
			if err := d.RateLimiter.Wait(ctx, Domain(link)); err != nil {
				return nil, err
			}
		}
		resp, err := d.Fetcher.Fetch(ctx, link)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return nil, &statusError{code: resp.StatusCode, status: resp.Status}
		}
		return resp, nil
	}, retryable, func(attempt int, err error) {
		d.logger().Info("retrying download", "url", link, "attempt", attempt, "err", err)
	})
	if err != nil {
		return outcomeFailed, 0, err
	}

	if !IsPDF(resp) {
		return outcomeSkipped, 0, nil
	}

	path := filepath.Join(dir, fs.FileName(link)+".pdf")
	if err := writeFileAtomic(path, resp.Body); err != nil {
		return outcomeFailed, 0, err
	}
	return outcomeSaved, int64(len(resp.Body)), nil
}

// retryable reports whether a failed attempt is worth repeating: transport
// failures, throttling and server errors are; other statuses and
// cancellation are not.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return harvest.ErrorCode(err) != harvest.EINVALID
}

// IsPDF reports whether resp carries a PDF document, judged by its
// Content-Type or, failing that, by the %PDF signature.
func IsPDF(resp *harvest.Response) bool {
	if mt, _, err := mime.ParseMediaType(resp.ContentType()); err == nil && mt == "application/pdf" {
		return true
	}
	return bytes.HasPrefix(resp.Body, []byte("%PDF"))
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (d *Downloader) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}
