package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
)

// Run executes the pdf command.
func (c *PDFCmd) Run(deps *Dependencies) error {
	ws := c.Workspace()
	if err := ws.Ensure(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	links, err := readLinks(deps, ws.LinksFile(c.Links))
	if err != nil {
		return err
	}

	if c.Concurrency > 0 {
		deps.Downloader.Concurrency = c.Concurrency
	}

	result, err := deps.Downloader.Download(deps.Ctx, links, ws.PDFsDir(), passPrinter(deps, "not a PDF"))
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Saved %d PDFs (%s) to %s, skipped %d, failed %d\n",
			result.Saved, crawl.FormatBytes(result.Bytes), ws.PDFsDir(), result.Skipped, result.Failed)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
