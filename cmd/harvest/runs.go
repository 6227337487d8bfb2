package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		links, err := deps.Runs.FindRunLinks(deps.Ctx, c.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		for _, link := range links {
			fmt.Fprintln(deps.Stdout, link)
		}
		return nil
	}

	filter := harvest.RunFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.StartURL = &c.URL
	}
	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'harvest links' to explore a listing.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-11s  %5d links  %-15s  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Mode, r.LinkCount, r.StopReason, r.StartURL)
	}
	return nil
}
