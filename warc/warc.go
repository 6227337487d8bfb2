// Package warc reads and writes WARC/1.0 web archive records.
package warc

import (
	"bytes"
	"crypto/sha1" //nolint:gosec
	"encoding/base32"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version is the record version line written by Writer.
const Version = "WARC/1.0"

// RecordType is the value of the WARC-Type header.
type RecordType string

const (
	TypeWarcinfo RecordType = "warcinfo"
	TypeRequest  RecordType = "request"
	TypeResponse RecordType = "response"
	TypeMetadata RecordType = "metadata"
)

// Content types of record blocks.
const (
	ContentTypeHTTPRequest  = "application/http; msgtype=request"
	ContentTypeHTTPResponse = "application/http; msgtype=response"
	ContentTypeFields       = "application/warc-fields"
)

// Field is a single named header line.
type Field struct {
	Name  string
	Value string
}

// Record is one WARC record. Headers without a dedicated field are kept in
// Extra in the order they were written or read.
type Record struct {
	Type          RecordType
	ID            string
	Date          time.Time
	TargetURI     string
	IPAddress     string
	ConcurrentTo  string
	ContentType   string
	PayloadDigest string
	Extra         []Field
	Block         []byte
}

// NewRecordID returns a fresh record identifier in <urn:uuid:...> form.
func NewRecordID() string {
	return "<urn:uuid:" + uuid.NewString() + ">"
}

// IsHTTP reports whether the block is an HTTP message.
func (r *Record) IsHTTP() bool {
	return r.ContentType == ContentTypeHTTPRequest || r.ContentType == ContentTypeHTTPResponse
}

// Payload returns the block without its HTTP message header for request
// and response records, and the whole block otherwise.
func (r *Record) Payload() []byte {
	if !r.IsHTTP() {
		return r.Block
	}
	if i := bytes.Index(r.Block, []byte("\r\n\r\n")); i >= 0 {
		return r.Block[i+4:]
	}
	return nil
}

// Get returns the value of the named extra header, or "" if absent.
func (r *Record) Get(name string) string {
	for _, f := range r.Extra {
		if equalFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Digest returns the sha1 digest of data in WARC's base32 notation.
func Digest(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec
	return "sha1:" + base32.StdEncoding.EncodeToString(sum[:])
}

// HTTPRequest builds a request record block.
func HTTPRequest(method, path string, headers []Field) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s HTTP/1.1\r\n", method, path)
	writeFields(&b, headers)
	b.WriteString("\r\n")
	return b.Bytes()
}

// HTTPResponse builds a response record block.
func HTTPResponse(status int, reason string, headers []Field, body []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", status, reason)
	writeFields(&b, headers)
	b.WriteString("\r\n")
	b.Write(body)
	return b.Bytes()
}

// Fields builds an application/warc-fields block.
func Fields(fields []Field) []byte {
	var b bytes.Buffer
	writeFields(&b, fields)
	return b.Bytes()
}

func writeFields(b *bytes.Buffer, fields []Field) {
	for _, f := range fields {
		fmt.Fprintf(b, "%s: %s\r\n", f.Name, f.Value)
	}
}

func equalFold(a, b string) bool {
	return bytes.EqualFold([]byte(a), []byte(b))
}
