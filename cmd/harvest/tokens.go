package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/estimate"
)

// Run executes the tokens command.
func (c *TokensCmd) Run(deps *Dependencies) error {
	ws := c.Workspace()
	if err := ws.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	if c.Language != "" {
		deps.Estimator.Language = c.Language
	}

	var total int64
	for _, kind := range kinds(c.Kind) {
		var report *estimate.Report
		var err error
		switch kind {
		case estimate.KindPDF:
			report, err = deps.Estimator.EstimatePDFs(deps.Ctx, ws.PDFsDir())
		case estimate.KindWARC:
			report, err = deps.Estimator.EstimateWARCs(deps.Ctx, ws.WARCsDir())
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}

		path, err := estimate.WriteReport(ws.TokensDir(), report)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		total += report.Tokens

		fmt.Fprintf(deps.Stdout, "%s: %s in %d documents from %d files", kind,
			crawl.FormatTokens(report.Tokens), report.Documents, report.Files)
		if report.Skipped > 0 {
			fmt.Fprintf(deps.Stdout, ", %d in other languages", report.Skipped)
		}
		if report.Errors > 0 {
			fmt.Fprintf(deps.Stdout, ", %d unreadable", report.Errors)
		}
		fmt.Fprintf(deps.Stdout, " (%s)\n", path)
	}

	if c.Kind == "all" {
		fmt.Fprintf(deps.Stdout, "total: %s\n", crawl.FormatTokens(total))
	}
	return nil
}

// kinds expands a pdf, warc or all argument.
func kinds(arg string) []estimate.Kind {
	switch arg {
	case "pdf":
		return []estimate.Kind{estimate.KindPDF}
	case "warc":
		return []estimate.Kind{estimate.KindWARC}
	default:
		return []estimate.Kind{estimate.KindPDF, estimate.KindWARC}
	}
}
