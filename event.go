package linkcrawl

// EventType identifies a hook point in the crawl loop.
type EventType int

const (
	// EventFetchStarted is emitted before a page is fetched.
	EventFetchStarted EventType = iota
	// EventFetchFailed is emitted when fetching or parsing a page fails.
	EventFetchFailed
	// EventInvalidHref is emitted for an href that cannot be resolved.
	EventInvalidHref
	// EventSaved is emitted after a visited link is persisted.
	EventSaved
	// EventSaveFailed is emitted when persisting a visited link fails.
	EventSaveFailed
	// EventFinished is emitted once when the crawl loop exits.
	EventFinished
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventFetchStarted:
		return "fetch_started"
	case EventFetchFailed:
		return "fetch_failed"
	case EventInvalidHref:
		return "invalid_href"
	case EventSaved:
		return "saved"
	case EventSaveFailed:
		return "save_failed"
	case EventFinished:
		return "finished"
	}
	return "unknown"
}

// Event reports progress during a crawl.
type Event struct {
	Type EventType

	// URL is the page address the event concerns.
	// Empty for EventFinished.
	URL string

	// Href is the raw attribute value for EventInvalidHref.
	Href string

	// Error is set for failure events.
	Error error

	// Visited and Pending are frontier sizes at the time of the event.
	Visited int
	Pending int
}

// EventFunc receives crawl events. It is called from the goroutine that
// owns the frontier, so implementations need not be safe for concurrent use
// unless they are shared between crawls.
type EventFunc func(event Event)
