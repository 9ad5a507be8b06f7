package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/crawl"
	lcslog "github.com/fwojciec/linkcrawl/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if err := validateSeed(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
		return err
	}

	ctx := deps.Ctx
	if c.Seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.Seconds)*time.Second)
		defer cancel()
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var logOpts []lcslog.EventLoggerOption
	if c.URLWidth > 0 {
		logOpts = append(logOpts, lcslog.WithURLFormatter(func(u string) string {
			return crawl.TruncateURL(u, c.URLWidth)
		}))
	}

	frontier := crawl.NewFrontier(c.URL, c.RestrictDomain,
		crawl.WithFetcher(deps.Fetcher),
		crawl.WithExtractor(deps.Extractor),
		crawl.WithStore(deps.Links),
		crawl.WithProgress(lcslog.NewEventLogger(logger, logOpts...).Log),
		crawl.WithWorkers(c.Workers),
		crawl.WithMaxPages(c.MaxPages),
	)

	result, err := frontier.Crawl(ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, crawl.FormatSummary(result))
	return nil
}

// validateSeed rejects seeds that cannot be resolved against. The seed is
// fetched even if it would fail the https gate applied to discovered links.
func validateSeed(seed string) error {
	u, err := url.Parse(seed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return linkcrawl.Errorf(linkcrawl.EINVALID, "invalid seed URL %q", seed)
	}
	return nil
}
