package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/estimate"
	"github.com/fwojciec/harvest/pack"
)

// Run executes the pack command. With "all", a kind without files is
// reported and skipped.
func (c *PackCmd) Run(deps *Dependencies) error {
	ws := c.Workspace()
	if err := ws.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	written := 0
	for _, kind := range kinds(c.Kind) {
		var a *pack.Archive
		var err error
		switch kind {
		case estimate.KindPDF:
			a, err = pack.ZipPDFs(deps.Ctx, ws.PDFsDir(), ws.Description(), ws.ArchivesDir())
		case estimate.KindWARC:
			a, err = pack.CombineWARCs(deps.Ctx, ws.WARCsDir(), ws.Description(), ws.ArchivesDir())
		}
		if harvest.ErrorCode(err) == harvest.ENOTFOUND && c.Kind == "all" {
			fmt.Fprintf(deps.Stdout, "%s: nothing to pack\n", kind)
			continue
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		written++
		fmt.Fprintf(deps.Stdout, "%s: wrote %s (%d files, %s)\n", kind, a.Path, a.Files, crawl.FormatBytes(a.Bytes))
	}

	if written == 0 {
		err := harvest.Errorf(harvest.ENOTFOUND, "no PDF or WARC files in %s", ws.Dir())
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	return nil
}
