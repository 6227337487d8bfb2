// Package pdf extracts plain text from downloaded PDF documents.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/ledongthuc/pdf"
)

var _ harvest.PDFReader = (*Reader)(nil)

// Reader reads the text layer of PDF files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadText returns the concatenated text of every page in the file.
// Scanned documents without a text layer yield an empty string.
func (r *Reader) ReadText(path string) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = harvest.Errorf(harvest.EINVALID, "malformed PDF %s: %v", path, p)
		}
	}()

	f, doc, err := pdf.Open(path)
	if err != nil {
		return "", harvest.Errorf(harvest.EINVALID, "opening PDF %s: %v", path, err)
	}
	defer f.Close()

	plain, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return "", err
	}
	return b.String(), nil
}
