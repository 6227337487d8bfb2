package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/fwojciec/harvest"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	cfg, err := c.config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	ws := c.Workspace()
	if err := ws.Ensure(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	started := deps.now()
	result, exploreErr := deps.Explorer.Explore(deps.Ctx, cfg)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(exploreErr))
		return exploreErr
	}
	finished := deps.now()

	links := append([]string(nil), result.Links...)
	sort.Strings(links)

	// An interrupted exploration still saves what it collected.
	ctx := context.WithoutCancel(deps.Ctx)

	file := ws.LinksFile(c.Output)
	if err := file.WriteLinks(ctx, links); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved %d links to %s (%s, %d turns, stopped: %s)\n",
		len(links), file.Path, result.Mode, result.Turns, result.StopReason)

	if deps.Runs == nil {
		return interrupted(deps, exploreErr)
	}
	run := &harvest.Run{
		StartURL:     cfg.StartURL,
		LinkSelector: cfg.LinkSelector,
		Mode:         result.Mode,
		Turns:        result.Turns,
		StopReason:   result.StopReason,
		OutputPath:   file.Path,
		StartedAt:    started,
		FinishedAt:   finished,
	}
	if err := deps.Runs.CreateRun(ctx, run, links); err != nil {
		fmt.Fprintf(deps.Stderr, "error: recording run: %s\n", harvest.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Recorded run %s\n", run.ID)
	return interrupted(deps, exploreErr)
}

// interrupted reports an exploration that ended with an error after its
// partial result was saved.
func interrupted(deps *Dependencies, err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
	return err
}

// config merges the profile, if any, with the flags. Flags that are set
// win; MaxPages falls back to harvest.DefaultMaxPages.
func (c *LinksCmd) config() (harvest.ExplorationConfig, error) {
	var cfg harvest.ExplorationConfig
	if c.Profile != "" {
		p, err := LoadProfile(c.Profile)
		if err != nil {
			return cfg, err
		}
		cfg = p.Config()
	}

	if c.URL != "" {
		cfg.StartURL = c.URL
	}
	if c.Selector != "" {
		cfg.LinkSelector = c.Selector
	}
	if c.Pagination != "" {
		cfg.PaginationURLTemplate = c.Pagination
	}
	if c.Next != "" {
		cfg.NextControlSelector = c.Next
	}
	if c.LoadMore != "" {
		cfg.LoadMoreControlSelector = c.LoadMore
	}
	if c.Scroll {
		cfg.ScrollEnabled = true
	}
	if c.MaxPages != 0 {
		cfg.MaxPages = c.MaxPages
	}
	if c.MaxNoNewLinks != 0 {
		cfg.MaxNoNewLinksStreak = c.MaxNoNewLinks
	}
	if c.MaxNoLoadMore != 0 {
		cfg.MaxNoLoadMoreStreak = c.MaxNoLoadMore
	}
	if c.ScrollSteps != 0 {
		cfg.Scroll.MaxSteps = c.ScrollSteps
	}
	if c.ScrollWait != 0 {
		cfg.Scroll.SettleWait = c.ScrollWait
	}
	if c.StagnantSteps != 0 {
		cfg.Scroll.StagnantStepsBeforeGiveUp = c.StagnantSteps
	}

	if cfg.MaxPages == 0 {
		cfg.MaxPages = harvest.DefaultMaxPages
	}
	cfg = cfg.WithDefaults()
	return cfg, cfg.Validate()
}
