package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/goquery"
	lchttp "github.com/fwojciec/linkcrawl/http"
	"github.com/fwojciec/linkcrawl/rod"
	lcslog "github.com/fwojciec/linkcrawl/slog"
	"github.com/fwojciec/linkcrawl/sqlite"
)

func main() {
	ctx := context.Background()

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

	// HTTPClient overrides the client used by the plain HTTP fetcher.
	HTTPClient *http.Client

	// SQLite database backing the link store.
	DB *sqlite.DB

	Links linkcrawl.LinkStore
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
		kong.Name("linkcrawl"),
		kong.Description("Crawl a site and record every https link it reaches."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'linkcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	verbose := cmd == "crawl" && cli.Crawl.Verbose
	deps.Logger = newLogger(stderr, verbose)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LINKCRAWL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Links = sqlite.NewLinkStore(m.DB)
	deps.Links = m.Links

	if cmd == "crawl" {
		var fetcher linkcrawl.Fetcher
		if cli.Crawl.Render {
			rf, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Crawl.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rf
		} else {
			opts := []lchttp.Option{lchttp.WithTimeout(cli.Crawl.Timeout)}
			if m.HTTPClient != nil {
				opts = append(opts, lchttp.WithClient(m.HTTPClient))
			}
			fetcher = lchttp.NewFetcher(opts...)
		}
		defer fetcher.Close()

		var extractor linkcrawl.HrefExtractor = goquery.NewExtractor()

		if verbose {
			fetcher = lcslog.NewLoggingFetcher(fetcher, deps.Logger)
			extractor = lcslog.NewLoggingExtractor(extractor, deps.Logger)
			deps.Links = lcslog.NewLoggingLinkStore(m.Links, deps.Logger)
		}

		deps.Fetcher = fetcher
		deps.Extractor = extractor
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("LINKCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "linkcrawl.db"
	}
	dir := filepath.Join(home, ".linkcrawl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "linkcrawl.db")
}
