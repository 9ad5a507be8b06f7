package slog

import (
	"log/slog"

	"github.com/fwojciec/linkcrawl"
)

// EventLogger writes crawl events as structured log lines. Failures are
// logged at warn level since they never stop a crawl.
type EventLogger struct {
	logger    *slog.Logger
	formatURL func(string) string
}

// EventLoggerOption configures an EventLogger.
type EventLoggerOption func(*EventLogger)

// WithURLFormatter rewrites the url attribute before it is logged, for
// example to shorten long addresses on a terminal.
func WithURLFormatter(fn func(string) string) EventLoggerOption {
	return func(l *EventLogger) {
		l.formatURL = fn
	}
}

// NewEventLogger creates a new EventLogger.
func NewEventLogger(logger *slog.Logger, opts ...EventLoggerOption) *EventLogger {
	l := &EventLogger{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log handles one event. Its method value satisfies linkcrawl.EventFunc.
func (l *EventLogger) Log(event linkcrawl.Event) {
	attrs := []any{
		"visited", event.Visited,
		"pending", event.Pending,
	}
	if event.URL != "" {
		u := event.URL
		if l.formatURL != nil {
			u = l.formatURL(u)
		}
		attrs = append(attrs, "url", u)
	}

	switch event.Type {
	case linkcrawl.EventFetchStarted:
		l.logger.Debug("fetching", attrs...)
	case linkcrawl.EventSaved:
		l.logger.Info("saved", attrs...)
	case linkcrawl.EventFetchFailed, linkcrawl.EventSaveFailed:
		attrs = append(attrs, "code", linkcrawl.ErrorCode(event.Error), "err", event.Error)
		l.logger.Warn(event.Type.String(), attrs...)
	case linkcrawl.EventInvalidHref:
		attrs = append(attrs, "href", event.Href)
		l.logger.Warn(event.Type.String(), attrs...)
	case linkcrawl.EventFinished:
		l.logger.Info("crawl finished", attrs...)
	}
}
