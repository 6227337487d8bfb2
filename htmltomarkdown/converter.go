// Package htmltomarkdown renders archived HTML documents as Markdown, the
// form most language-model pipelines ingest.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/harvest"
)

var _ harvest.TextExtractor = (*TextExtractor)(nil)

// TextExtractor wraps html-to-markdown to turn documents into Markdown text.
type TextExtractor struct {
	conv *converter.Converter
}

// NewTextExtractor creates a new TextExtractor. Tables are kept as pipe
// tables.
func NewTextExtractor() *TextExtractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &TextExtractor{conv: conv}
}

// ExtractText converts the document to Markdown.
func (e *TextExtractor) ExtractText(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}
	return e.conv.ConvertString(src)
}
