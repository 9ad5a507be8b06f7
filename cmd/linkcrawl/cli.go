package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/linkcrawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Links     linkcrawl.LinkStore
	Fetcher   linkcrawl.Fetcher
	Extractor linkcrawl.HrefExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl from a seed URL and store every page visited"`
	List  ListCmd  `cmd:"" help:"List stored links"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL            string        `required:"" env:"LINKCRAWL_URL" help:"Seed URL"`
	RestrictDomain bool          `short:"r" env:"LINKCRAWL_RESTRICT_DOMAIN" help:"Only follow links to the host they were found on"`
	Seconds        int           `default:"0" env:"LINKCRAWL_SECONDS" help:"Stop after this many seconds (0 for no limit)"`
	Workers        int           `short:"w" default:"1" env:"LINKCRAWL_WORKERS" help:"Pages fetched concurrently"`
	MaxPages       int           `default:"0" env:"LINKCRAWL_MAX_PAGES" help:"Stop after this many pages (0 for no limit)"`
	Render         bool          `env:"LINKCRAWL_RENDER" help:"Render pages with headless Chrome"`
	Timeout        time.Duration `default:"10s" env:"LINKCRAWL_TIMEOUT" help:"Per-page fetch timeout"`
	URLWidth       int           `default:"100" help:"Shorten URLs in progress lines to this many characters (0 for full URLs)"`
	Verbose        bool          `short:"v" help:"Log every fetch, parse and save"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Address string `help:"Only show rows for this exact address"`
	Limit   int    `short:"n" default:"0" help:"Maximum rows to show (0 for all)"`
	Offset  int    `default:"0" help:"Rows to skip"`
	JSON    bool   `name:"json" help:"Print rows as JSON lines"`
}
