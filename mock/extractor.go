package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of harvest.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(ctx context.Context, page harvest.Page, selector string) *harvest.LinkSet
}

func (e *LinkExtractor) Extract(ctx context.Context, page harvest.Page, selector string) *harvest.LinkSet {
	return e.ExtractFn(ctx, page, selector)
}

var _ harvest.Explorer = (*Explorer)(nil)

// Explorer is a mock implementation of harvest.Explorer.
type Explorer struct {
	ExploreFn func(ctx context.Context, cfg harvest.ExplorationConfig) (*harvest.ExplorationResult, error)
}

func (e *Explorer) Explore(ctx context.Context, cfg harvest.ExplorationConfig) (*harvest.ExplorationResult, error) {
	return e.ExploreFn(ctx, cfg)
}
