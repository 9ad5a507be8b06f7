package mock

import (
	"context"

	"github.com/fwojciec/linkcrawl"
)

var _ linkcrawl.LinkStore = (*LinkStore)(nil)

// LinkStore is a mock implementation of linkcrawl.LinkStore.
type LinkStore struct {
	SaveLinkFn  func(ctx context.Context, address string) error
	FindLinksFn func(ctx context.Context, filter linkcrawl.LinkFilter) ([]*linkcrawl.SavedLink, error)
}

func (s *LinkStore) SaveLink(ctx context.Context, address string) error {
	return s.SaveLinkFn(ctx, address)
}

func (s *LinkStore) FindLinks(ctx context.Context, filter linkcrawl.LinkFilter) ([]*linkcrawl.SavedLink, error) {
	return s.FindLinksFn(ctx, filter)
}
