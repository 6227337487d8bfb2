package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/estimate"
	"github.com/fwojciec/harvest/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Runs       harvest.RunService
	Explorer   harvest.Explorer
	Downloader *crawl.Downloader
	Capturer   *crawl.Capturer
	Estimator  *estimate.Estimator

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every browser and HTTP operation to stderr"`

	Links  LinksCmd  `cmd:"" help:"Explore a listing and save the discovered links"`
	PDF    PDFCmd    `cmd:"" name:"pdf" help:"Download PDF documents from saved links"`
	WARC   WARCCmd   `cmd:"" name:"warc" help:"Capture rendered pages from saved links as WARC files"`
	Tokens TokensCmd `cmd:"" help:"Estimate tokens in downloaded PDFs and captured WARCs"`
	Pack   PackCmd   `cmd:"" help:"Bundle PDFs and WARCs into archives"`
	Runs   RunsCmd   `cmd:"" help:"List recorded link explorations"`
}

// WorkspaceFlags select the output tree shared by all passes.
type WorkspaceFlags struct {
	Dir        string `env:"HARVEST_DIR" default:"output" help:"Output root directory"`
	Project    string `short:"p" required:"" help:"Project name"`
	Subproject string `short:"s" required:"" help:"Subproject name"`
}

// Workspace returns the workspace the flags describe.
func (f *WorkspaceFlags) Workspace() *fs.Workspace {
	return &fs.Workspace{Root: f.Dir, Project: f.Project, Subproject: f.Subproject}
}

// LinksCmd is the "links" subcommand. Flags override profile values.
type LinksCmd struct {
	WorkspaceFlags `embed:""`

	URL              string        `arg:"" optional:"" help:"Start URL (optional with --profile)"`
	Profile          string        `type:"path" help:"Site profile YAML file"`
	Selector         string        `help:"CSS selector of the links to collect (default: a)"`
	Pagination       string        `help:"Pagination URL template containing {page_number}"`
	Next             string        `help:"CSS selector of the next-page control"`
	LoadMore         string        `name:"load-more" help:"CSS selector of the load-more control"`
	Scroll           bool          `help:"Scroll to trigger lazy loading"`
	MaxPages         int           `name:"max-pages" help:"Maximum number of turns (default: 5)"`
	MaxNoNewLinks    int           `name:"max-no-new-links" help:"Stop after this many turns without new links (default: 5)"`
	MaxNoLoadMore    int           `name:"max-no-load-more" help:"Stop after this many turns without a load-more control (default: 5)"`
	ScrollSteps      int           `name:"scroll-steps" help:"Scroll steps per turn (default: 10)"`
	ScrollWait       time.Duration `name:"scroll-wait" help:"Wait after each scroll step (default: 2s)"`
	StagnantSteps    int           `name:"stagnant-steps" help:"Stop scrolling after this many steps without growth (default: 5)"`
	Output           string        `short:"o" default:"links.csv" help:"Links file name inside the links directory"`
	Headful          bool          `help:"Show the browser window"`
	RecycleAfter     int64         `name:"recycle-after" default:"75" help:"Relaunch the browser after this many pages"`
}

// PDFCmd is the "pdf" subcommand.
type PDFCmd struct {
	WorkspaceFlags `embed:""`

	Links       string        `short:"l" default:"links.csv" help:"Links file name inside the links directory"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent downloads"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per domain (0 for unlimited)"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Timeout per request"`
	Insecure    bool          `help:"Skip TLS certificate verification"`
}

// WARCCmd is the "warc" subcommand.
type WARCCmd struct {
	WorkspaceFlags `embed:""`

	Links    string        `short:"l" default:"links.csv" help:"Links file name inside the links directory"`
	Timeout  time.Duration `short:"t" default:"60s" help:"Render timeout per page"`
	Insecure bool          `help:"Skip TLS certificate verification"`
	Headful  bool          `help:"Show the browser window"`
}

// TokensCmd is the "tokens" subcommand.
type TokensCmd struct {
	WorkspaceFlags `embed:""`

	Kind     string `arg:"" optional:"" enum:"pdf,warc,all" default:"all" help:"Files to estimate: pdf, warc or all"`
	Language string `default:"id" help:"ISO 639-1 language of WARC documents to count"`
	Model    string `help:"Count with this Gemini model's tokenizer instead of characters/4"`
	Content  string `enum:"full,main,article,markdown" default:"full" help:"WARC text to count (full, main, article or markdown)"`
}

// PackCmd is the "pack" subcommand.
type PackCmd struct {
	WorkspaceFlags `embed:""`

	Kind string `arg:"" optional:"" enum:"pdf,warc,all" default:"all" help:"Archives to build: pdf, warc or all"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	ID    string `arg:"" optional:"" help:"Print the links of this run"`
	URL   string `name:"url" help:"Only runs with this start URL"`
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to list"`
}
