// Package goquery extracts text from archived HTML documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
	"golang.org/x/net/html"
)

var _ harvest.TextExtractor = (*TextExtractor)(nil)

// invisible matches elements whose content is never rendered as text.
const invisible = "script, style, noscript, template, svg, iframe, head"

// TextExtractor returns the visible text of HTML documents.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText parses the document and returns its visible text with runs of
// whitespace collapsed to single spaces. Block boundaries become spaces so
// adjacent paragraphs do not run together.
func (e *TextExtractor) ExtractText(src string) (string, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find(invisible).Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		collect(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " "), nil
}

func collect(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(b, c)
	}
	if n.Type == html.ElementNode {
		b.WriteByte(' ')
	}
}
