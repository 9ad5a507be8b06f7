package linkcrawl

import "context"

// Fetcher retrieves page bodies from URLs.
type Fetcher interface {
	// Fetch issues a GET for url and returns the body as text.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
