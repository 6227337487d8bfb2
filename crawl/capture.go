package crawl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/fs"
	"github.com/fwojciec/harvest/warc"
)

// Capturer archives rendered pages as WARC files, one file per link.
//
// The browser supplies the rendered document and user agent; a plain HTTP
// request supplies the status line, response headers and remote address.
type Capturer struct {
	Renderer harvest.Renderer
	Fetcher  harvest.Fetcher
	Logger   *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// CaptureResult holds the outcome of a capture pass.
type CaptureResult struct {
	Saved  int
	Failed int
	Bytes  int64
}

// Capture writes <name>.warc into dir for every link, sequentially.
// Failures are counted and logged; only cancellation is returned as an
// error, together with the partial result.
func (c *Capturer) Capture(ctx context.Context, links []string, dir string, progress ProgressFunc) (*CaptureResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	total := len(links)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	result := &CaptureResult{}
	completed := 0
	for _, link := range links {
		if ctx.Err() != nil {
			break
		}
		n, err := c.captureOne(ctx, link, dir)
		completed++

		ev := ProgressEvent{Completed: completed, Total: total, URL: link, Bytes: n, Error: err}
		if err != nil {
			result.Failed++
			ev.Type = ProgressFailed
			c.logger().Error("capture failed", "url", link, "err", err)
		} else {
			result.Saved++
			result.Bytes += n
			ev.Type = ProgressCompleted
		}
		if progress != nil {
			progress(ev)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	}
	return result, ctx.Err()
}

func (c *Capturer) captureOne(ctx context.Context, link, dir string) (int64, error) {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return 0, harvest.Errorf(harvest.EINVALID, "invalid URL %q", link)
	}

	snap, err := c.Renderer.Render(ctx, link)
	if err != nil {
		return 0, fmt.Errorf("rendering: %w", err)
	}
	resp, err := c.Fetcher.Fetch(ctx, link)
	if err != nil {
		return 0, fmt.Errorf("fetching headers: %w", err)
	}

	var buf bytes.Buffer
	if err := c.writeRecords(&buf, u, snap, resp); err != nil {
		return 0, err
	}

	path := filepath.Join(dir, fs.FileName(link)+".warc")
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

// writeRecords writes the request, response and metadata records of one
// capture. The response payload is the rendered document, not the body of
// the plain HTTP request.
func (c *Capturer) writeRecords(buf *bytes.Buffer, u *url.URL, snap *harvest.Snapshot, resp *harvest.Response) error {
	now := c.now().UTC()
	w := warc.NewWriter(buf)
	html := []byte(snap.HTML)

	request := &warc.Record{
		Type:        warc.TypeRequest,
		Date:        now,
		TargetURI:   u.String(),
		IPAddress:   resp.RemoteIP,
		ContentType: warc.ContentTypeHTTPRequest,
		Block: warc.HTTPRequest(http.MethodGet, u.RequestURI(), []warc.Field{
			{Name: "Host", Value: u.Host},
			{Name: "User-Agent", Value: snap.UserAgent},
			{Name: "Accept", Value: "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"},
		}),
	}
	if err := w.WriteRecord(request); err != nil {
		return fmt.Errorf("writing request record: %w", err)
	}

	server := resp.Header.Get("Server")
	if server == "" {
		server = "Unknown"
	}
	response := &warc.Record{
		Type:         warc.TypeResponse,
		Date:         now,
		TargetURI:    u.String(),
		IPAddress:    resp.RemoteIP,
		ConcurrentTo: request.ID,
		ContentType:  warc.ContentTypeHTTPResponse,
		Block: warc.HTTPResponse(resp.StatusCode, reason(resp), []warc.Field{
			{Name: "Content-Type", Value: resp.ContentType()},
			{Name: "Server", Value: server},
			{Name: "Connection", Value: "keep-alive"},
		}, html),
	}
	if err := w.WriteRecord(response); err != nil {
		return fmt.Errorf("writing response record: %w", err)
	}

	metadata := &warc.Record{
		Type:         warc.TypeMetadata,
		Date:         now,
		TargetURI:    u.String(),
		ConcurrentTo: response.ID,
		ContentType:  warc.ContentTypeFields,
		Block: warc.Fields([]warc.Field{
			{Name: "URL", Value: u.String()},
			{Name: "Timestamp", Value: now.Format(time.RFC3339)},
			{Name: "Content-Length", Value: strconv.Itoa(len(html))},
		}),
	}
	if err := w.WriteRecord(metadata); err != nil {
		return fmt.Errorf("writing metadata record: %w", err)
	}
	return nil
}

// reason returns the reason phrase of the response status line.
func reason(resp *harvest.Response) string {
	if _, phrase, ok := strings.Cut(resp.Status, " "); ok && phrase != "" {
		return phrase
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "OK"
}

func (c *Capturer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Capturer) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
