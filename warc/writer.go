package warc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Writer writes records to an underlying stream.
type Writer struct {
	w   *bufio.Writer
	now func() time.Time
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), now: time.Now}
}

// WriteRecord writes r. A missing ID or Date is filled in and stored back
// into r so callers can reference the record from later ones. For HTTP
// records without a PayloadDigest, the digest is computed from Payload.
func (w *Writer) WriteRecord(r *Record) error {
	if r.Type == "" {
		return fmt.Errorf("record type required")
	}
	if r.ID == "" {
		r.ID = NewRecordID()
	}
	if r.Date.IsZero() {
		r.Date = w.now().UTC()
	}
	if r.PayloadDigest == "" && r.IsHTTP() {
		r.PayloadDigest = Digest(r.Payload())
	}

	fields := []Field{
		{"WARC-Type", string(r.Type)},
		{"WARC-Record-ID", r.ID},
		{"WARC-Date", r.Date.UTC().Format(time.RFC3339)},
	}
	if r.TargetURI != "" {
		fields = append(fields, Field{"WARC-Target-URI", r.TargetURI})
	}
	if r.IPAddress != "" {
		fields = append(fields, Field{"WARC-IP-Address", r.IPAddress})
	}
	if r.ConcurrentTo != "" {
		fields = append(fields, Field{"WARC-Concurrent-To", r.ConcurrentTo})
	}
	if r.PayloadDigest != "" {
		fields = append(fields, Field{"WARC-Payload-Digest", r.PayloadDigest})
	}
	fields = append(fields, r.Extra...)
	if r.ContentType != "" {
		fields = append(fields, Field{"Content-Type", r.ContentType})
	}
	fields = append(fields, Field{"Content-Length", strconv.Itoa(len(r.Block))})

	if _, err := w.w.WriteString(Version + "\r\n"); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w.w, "%s: %s\r\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString("\r\n"); err != nil {
		return err
	}
	if _, err := w.w.Write(r.Block); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\r\n\r\n"); err != nil {
		return err
	}
	return w.w.Flush()
}
