// Package trafilatura extracts the main content of archived HTML documents,
// leaving out navigation, sidebars and footers.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/markusmobius/go-trafilatura"
)

var _ harvest.TextExtractor = (*TextExtractor)(nil)

// TextExtractor wraps go-trafilatura to return the main text of a page.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText returns the main content of the document with whitespace
// collapsed. Pages without recognizable main content are an error.
func (e *TextExtractor) ExtractText(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(src), opts)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(result.ContentText), " "), nil
}
