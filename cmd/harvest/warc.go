package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
)

// Run executes the warc command.
func (c *WARCCmd) Run(deps *Dependencies) error {
	ws := c.Workspace()
	if err := ws.Ensure(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	links, err := readLinks(deps, ws.LinksFile(c.Links))
	if err != nil {
		return err
	}

	result, err := deps.Capturer.Capture(deps.Ctx, links, ws.WARCsDir(), passPrinter(deps, ""))
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Saved %d WARC files (%s) to %s, failed %d\n",
			result.Saved, crawl.FormatBytes(result.Bytes), ws.WARCsDir(), result.Failed)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
