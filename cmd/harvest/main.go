package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/estimate"
	"github.com/fwojciec/harvest/explore"
	"github.com/fwojciec/harvest/gemini"
	"github.com/fwojciec/harvest/goquery"
	"github.com/fwojciec/harvest/htmltomarkdown"
	hhttp "github.com/fwojciec/harvest/http"
	"github.com/fwojciec/harvest/pdf"
	"github.com/fwojciec/harvest/readability"
	"github.com/fwojciec/harvest/rod"
	hslog "github.com/fwojciec/harvest/slog"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/fwojciec/harvest/trafilatura"
	"github.com/fwojciec/harvest/whatlang"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService harvest.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Harvest document links from listing pages, then download, archive and measure them"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	cmd := strings.Fields(kongCtx.Command())[0]
	switch cmd {
	case "links", "runs":
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HARVEST_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.Runs = m.RunService
	}

	switch cmd {
	case "links":
		browser, err := rod.NewBrowser(
			rod.WithHeadless(!cli.Links.Headful),
			rod.WithRecycleAfter(cli.Links.RecycleAfter),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()

		var b harvest.Browser = browser
		if cli.Verbose {
			b = hslog.NewLoggingBrowser(browser, deps.Logger)
		}
		var explorer harvest.Explorer = &explore.Explorer{
			Browser:  b,
			Logger:   deps.Logger,
			Progress: turnPrinter(stdout),
		}
		if cli.Verbose {
			explorer = hslog.NewLoggingExplorer(explorer, deps.Logger)
		}
		deps.Explorer = explorer

	case "pdf":
		var fetcher harvest.Fetcher = hhttp.NewFetcher(
			hhttp.WithTimeout(cli.PDF.Timeout),
			hhttp.WithInsecureSkipVerify(cli.PDF.Insecure),
		)
		if cli.Verbose {
			fetcher = hslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		deps.Downloader = &crawl.Downloader{
			Fetcher:     fetcher,
			RateLimiter: crawl.NewDomainLimiter(cli.PDF.RPS),
			Concurrency: cli.PDF.Concurrency,
			Logger:      deps.Logger,
		}

	case "warc":
		browser, err := rod.NewBrowser(rod.WithHeadless(!cli.WARC.Headful))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		renderer := rod.NewRenderer(browser, rod.WithRenderTimeout(cli.WARC.Timeout))
		defer renderer.Close()

		var r harvest.Renderer = renderer
		var fetcher harvest.Fetcher = hhttp.NewFetcher(hhttp.WithInsecureSkipVerify(cli.WARC.Insecure))
		if cli.Verbose {
			r = hslog.NewLoggingRenderer(r, deps.Logger)
			fetcher = hslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		deps.Capturer = &crawl.Capturer{
			Renderer: r,
			Fetcher:  fetcher,
			Logger:   deps.Logger,
		}

	case "tokens":
		est := &estimate.Estimator{
			PDFReader:     pdf.NewReader(),
			TextExtractor: textExtractor(cli.Tokens.Content),
			Detector:      whatlang.NewDetector(),
			Logger:        deps.Logger,
		}
		if cli.Tokens.Model != "" {
			counter, err := gemini.NewTokenCounter(cli.Tokens.Model)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			est.Counter = counter
		}
		deps.Estimator = est
	}

	return kongCtx.Run(deps)
}

// textExtractor selects how WARC documents are reduced to text.
func textExtractor(content string) harvest.TextExtractor {
	switch content {
	case "main":
		return trafilatura.NewTextExtractor()
	case "article":
		return readability.NewTextExtractor()
	case "markdown":
		return htmltomarkdown.NewTextExtractor()
	default:
		return goquery.NewTextExtractor()
	}
}

// newLogger returns a text logger on stderr. Verbose mode logs at debug
// level; otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// turnPrinter reports exploration turns as they complete.
func turnPrinter(w io.Writer) explore.ProgressFunc {
	return func(ev explore.TurnEvent) {
		fmt.Fprintf(w, "  turn %d  +%d new, %d total  %s\n",
			ev.Turn, ev.NewLinks, ev.TotalLinks, crawl.TruncateURL(ev.URL, 80))
	}
}

func defaultDBPath() string {
	if path := os.Getenv("HARVEST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "harvest.db"
	}
	dir := filepath.Join(home, ".harvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "harvest.db")
}
