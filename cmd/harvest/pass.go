package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/fs"
)

// readLinks loads the links a download or capture pass works on.
func readLinks(deps *Dependencies, file *fs.LinkFile) ([]string, error) {
	links, err := file.ReadLinks(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		if harvest.ErrorCode(err) == harvest.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: run 'harvest links' first")
		}
		return nil, err
	}
	return links, nil
}

// passPrinter reports per-link progress of a download or capture pass.
// skipReason explains skipped links.
func passPrinter(deps *Dependencies, skipReason string) crawl.ProgressFunc {
	return func(ev crawl.ProgressEvent) {
		url := crawl.TruncateURL(ev.URL, 80)
		switch ev.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d links\n", ev.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%s)\n", ev.Completed, ev.Total, url, crawl.FormatBytes(ev.Bytes))
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] skip %s: %s\n", ev.Completed, ev.Total, url, skipReason)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %v\n", ev.Completed, ev.Total, url, ev.Error)
		}
	}
}
