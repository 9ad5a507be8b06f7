package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/linkcrawl"
)

var _ linkcrawl.HrefExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an HrefExtractor with parse logging.
type LoggingExtractor struct {
	next   linkcrawl.HrefExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next linkcrawl.HrefExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractHrefs logs how many hrefs a document yielded.
func (e *LoggingExtractor) ExtractHrefs(html string) (hrefs []string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"bytes", len(html),
			"hrefs", len(hrefs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractHrefs(html)
}
