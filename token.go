package harvest

import "context"

// TokenCounter counts tokens in text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// TextExtractor returns the visible text of an HTML document.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// LanguageDetector identifies the language of a text.
type LanguageDetector interface {
	// Detect returns the ISO 639-1 code of the text's language, or an
	// empty string if it cannot be determined.
	Detect(text string) string
}

// PDFReader extracts plain text from PDF files.
type PDFReader interface {
	ReadText(path string) (string, error)
}
