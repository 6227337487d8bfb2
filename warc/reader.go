package warc

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Reader iterates over the records of a WARC stream.
type Reader struct {
	br *bufio.Reader
	gz *gzip.Reader
}

// NewReader returns a Reader on r. Gzip-compressed streams, including
// streams made of one gzip member per record, are detected automatically.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return &Reader{br: bufio.NewReader(gz), gz: gz}, nil
	}
	return &Reader{br: br}, nil
}

// Next returns the next record, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (*Record, error) {
	line, err := r.skipBlankLines()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "WARC/") {
		return nil, fmt.Errorf("expected WARC version line, got %q", line)
	}

	rec := &Record{}
	length := -1
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, unexpected(err)
		}
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "warc-type":
			rec.Type = RecordType(value)
		case "warc-record-id":
			rec.ID = value
		case "warc-date":
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				rec.Date = t
			}
		case "warc-target-uri":
			rec.TargetURI = value
		case "warc-ip-address":
			rec.IPAddress = value
		case "warc-concurrent-to":
			rec.ConcurrentTo = value
		case "warc-payload-digest":
			rec.PayloadDigest = value
		case "content-type":
			rec.ContentType = value
		case "content-length":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid Content-Length %q", value)
			}
			length = n
		default:
			rec.Extra = append(rec.Extra, Field{Name: strings.TrimSpace(name), Value: value})
		}
	}
	if length < 0 {
		return nil, fmt.Errorf("record %s has no Content-Length", rec.ID)
	}

	rec.Block = make([]byte, length)
	if _, err := io.ReadFull(r.br, rec.Block); err != nil {
		return nil, unexpected(err)
	}
	return rec, nil
}

// Close releases the decompressor, if any. It does not close the
// underlying reader.
func (r *Reader) Close() error {
	if r.gz != nil {
		return r.gz.Close()
	}
	return nil
}

func (r *Reader) skipBlankLines() (string, error) {
	for {
		line, err := r.readLine()
		if err != nil {
			if err == io.EOF && line == "" {
				return "", io.EOF
			}
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

func (r *Reader) readLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return line, err
	}
	return string(bytes.TrimRight([]byte(line), "\r\n")), nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
