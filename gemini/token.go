// Package gemini counts tokens with the Gemini local tokenizer.
package gemini

import (
	"context"
	"sync"

	"github.com/fwojciec/harvest"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ harvest.TokenCounter = (*TokenCounter)(nil)

// DefaultModel is the model whose vocabulary is used when none is given.
const DefaultModel = "gemini-2.0-flash"

// segmentSize bounds the bytes passed to the tokenizer in one call.
const segmentSize = 1 << 20

// TokenCounter counts tokens offline with a model's vocabulary.
type TokenCounter struct {
	mu  sync.Mutex
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for the given model, or
// DefaultModel when model is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens in text. Large texts are counted in
// segments split on whitespace.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	total := 0
	for _, seg := range segments(text, segmentSize) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := tc.count(seg)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (tc *TokenCounter) count(text string) (int, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}

// segments splits text into pieces of at most size bytes, cutting after the
// last whitespace inside each window when there is one.
func segments(text string, size int) []string {
	var out []string
	for len(text) > size {
		cut := size
		for i := size; i > size/2; i-- {
			if text[i-1] == ' ' || text[i-1] == '\n' {
				cut = i
				break
			}
		}
		// Never split inside a UTF-8 sequence.
		for cut > 0 && cut < len(text) && text[cut]&0xC0 == 0x80 {
			cut--
		}
		out = append(out, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}
