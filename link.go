package linkcrawl

import (
	"context"
	"time"
)

// Link is a URL known to the crawler. It is both the unit of work and
// the unit of storage.
type Link struct {
	// Address is the absolute URL, as resolved against the page it was
	// discovered on. Addresses compare by exact string equality.
	Address string

	// Visited is false while the link is pending and set once the crawl
	// loop has finished processing it.
	Visited bool
}

// NewLink returns a pending link for address.
func NewLink(address string) *Link {
	return &Link{Address: address}
}

// SavedLink is a link as recorded by a LinkStore.
type SavedLink struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	AddressHash string    `json:"addressHash"`
	SavedAt     time.Time `json:"savedAt"`
}

// LinkFilter represents a filter for FindLinks.
type LinkFilter struct {
	Address *string `json:"address"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LinkStore persists visited links.
// Stores append rows and do not enforce uniqueness; the crawler's own
// visited set is the only dedup authority.
type LinkStore interface {
	// SaveLink appends one row for address.
	SaveLink(ctx context.Context, address string) error

	// FindLinks retrieves saved links matching the filter, oldest first.
	FindLinks(ctx context.Context, filter LinkFilter) ([]*SavedLink, error)
}
