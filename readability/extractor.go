// Package readability extracts article text from archived HTML documents.
package readability

import (
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/go-shiori/go-readability"
)

var _ harvest.TextExtractor = (*TextExtractor)(nil)

// TextExtractor wraps go-readability to return the article body of a page.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText returns the article text of the document with whitespace
// collapsed.
func (e *TextExtractor) ExtractText(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(src), nil)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(article.TextContent), " "), nil
}
