package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkcrawl"
)

var _ linkcrawl.LinkStore = (*LoggingLinkStore)(nil)

// LoggingLinkStore wraps a LinkStore with query logging.
type LoggingLinkStore struct {
	next   linkcrawl.LinkStore
	logger *slog.Logger
}

// NewLoggingLinkStore creates a new LoggingLinkStore.
func NewLoggingLinkStore(next linkcrawl.LinkStore, logger *slog.Logger) *LoggingLinkStore {
	return &LoggingLinkStore{next: next, logger: logger}
}

// SaveLink logs the address saved and delegates to the wrapped store.
func (s *LoggingLinkStore) SaveLink(ctx context.Context, address string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save link",
			"url", address,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveLink(ctx, address)
}

// FindLinks logs the row count and address filter of each query.
func (s *LoggingLinkStore) FindLinks(ctx context.Context, filter linkcrawl.LinkFilter) (links []*linkcrawl.SavedLink, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"rows", len(links),
			"duration", time.Since(begin),
			"err", err,
		}
		if filter.Address != nil {
			attrs = append(attrs, "url", *filter.Address)
		}
		s.logger.Debug("find links", attrs...)
	}(time.Now())
	return s.next.FindLinks(ctx, filter)
}
