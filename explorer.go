package harvest

import "context"

// Mode identifies how an exploration reveals more content.
type Mode string

// Exploration modes.
const (
	ModePagination  Mode = "pagination"
	ModeInteractive Mode = "interactive"
)

// StopReason explains why an exploration ended.
type StopReason string

// Stop reasons.
const (
	StopMaxPages      StopReason = "max_pages"
	StopNoNewLinks    StopReason = "no_new_links"
	StopNoLoadMore    StopReason = "no_load_more"
	StopNoNextControl StopReason = "no_next_control"
	StopCanceled      StopReason = "canceled"
)

// ExplorationResult is the outcome of an exploration run.
type ExplorationResult struct {
	// Links holds every discovered link without duplicates.
	// Callers must not rely on the order.
	Links      []string
	Mode       Mode
	Turns      int
	StopReason StopReason
}

// Explorer discovers links by driving a browser through a listing.
type Explorer interface {
	// Explore runs one exploration. It returns an EINVALID error before
	// touching the browser if the config is invalid. Render failures during
	// the run are absorbed. A canceled run returns the partial result
	// together with the context error.
	Explore(ctx context.Context, cfg ExplorationConfig) (*ExplorationResult, error)
}

// LinkExtractor collects the target addresses of elements matching a
// selector in the page's current view.
type LinkExtractor interface {
	// Extract never fails: a page with no matches and a page that did not
	// render in time both yield an empty set.
	Extract(ctx context.Context, page Page, selector string) *LinkSet
}
