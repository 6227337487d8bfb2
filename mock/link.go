package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var (
	_ harvest.LinkWriter = (*LinkWriter)(nil)
	_ harvest.LinkReader = (*LinkReader)(nil)
)

// LinkWriter is a mock implementation of harvest.LinkWriter.
type LinkWriter struct {
	WriteLinksFn func(ctx context.Context, links []string) error
}

func (w *LinkWriter) WriteLinks(ctx context.Context, links []string) error {
	return w.WriteLinksFn(ctx, links)
}

// LinkReader is a mock implementation of harvest.LinkReader.
type LinkReader struct {
	ReadLinksFn func(ctx context.Context) ([]string, error)
}

func (r *LinkReader) ReadLinks(ctx context.Context) ([]string, error) {
	return r.ReadLinksFn(ctx)
}
