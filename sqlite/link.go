package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/google/uuid"
)

var _ linkcrawl.LinkStore = (*LinkStore)(nil)

// LinkStore implements linkcrawl.LinkStore using SQLite.
type LinkStore struct {
	db *DB
}

// NewLinkStore creates a new LinkStore.
func NewLinkStore(db *DB) *LinkStore {
	return &LinkStore{db: db}
}

// SaveLink appends a row for address.
func (s *LinkStore) SaveLink(ctx context.Context, address string) error {
	if address == "" {
		return linkcrawl.Errorf(linkcrawl.EINVALID, "link address required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO urls (id, address, address_hash, saved_at)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), address, hashAddress(address), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return linkcrawl.Errorf(linkcrawl.ESTORE, "insert %s: %w", address, err)
	}
	return nil
}

// FindLinks retrieves links matching the filter in insertion order.
func (s *LinkStore) FindLinks(ctx context.Context, filter linkcrawl.LinkFilter) ([]*linkcrawl.SavedLink, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, address, address_hash, saved_at FROM urls WHERE 1=1")

	if filter.Address != nil {
		// The hash narrows the scan through the index; the address
		// comparison rules out collisions.
		query.WriteString(" AND address_hash = ? AND address = ?")
		args = append(args, hashAddress(*filter.Address), *filter.Address)
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.ESTORE, "query links: %w", err)
	}
	defer rows.Close()

	var links []*linkcrawl.SavedLink
	for rows.Next() {
		var link linkcrawl.SavedLink
		var savedAt string
		if err := rows.Scan(&link.ID, &link.Address, &link.AddressHash, &savedAt); err != nil {
			return nil, linkcrawl.Errorf(linkcrawl.ESTORE, "scan link: %w", err)
		}
		if link.SavedAt, err = parseRFC3339(savedAt, "saved_at"); err != nil {
			return nil, linkcrawl.Errorf(linkcrawl.ESTORE, "%w", err)
		}
		links = append(links, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.ESTORE, "read links: %w", err)
	}
	return links, nil
}
