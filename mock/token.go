package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var (
	_ harvest.TokenCounter     = (*TokenCounter)(nil)
	_ harvest.TextExtractor    = (*TextExtractor)(nil)
	_ harvest.LanguageDetector = (*LanguageDetector)(nil)
	_ harvest.PDFReader        = (*PDFReader)(nil)
)

// TokenCounter is a mock implementation of harvest.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}

// TextExtractor is a mock implementation of harvest.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

// LanguageDetector is a mock implementation of harvest.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string) string
}

func (d *LanguageDetector) Detect(text string) string {
	return d.DetectFn(text)
}

// PDFReader is a mock implementation of harvest.PDFReader.
type PDFReader struct {
	ReadTextFn func(path string) (string, error)
}

func (r *PDFReader) ReadText(path string) (string, error) {
	return r.ReadTextFn(path)
}
