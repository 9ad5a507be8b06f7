package crawl

import (
	"sync"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/bloom"
)

// Visited set sizing for the Bloom pre-check.
const (
	// visitedExpectedURLs is the expected number of URLs for Bloom filter sizing.
	visitedExpectedURLs = 10000
	// visitedFalsePositiveRate is the acceptable false positive rate of the pre-check.
	visitedFalsePositiveRate = 0.01
)

// VisitedChecker reports whether an address has already been processed.
type VisitedChecker interface {
	Contains(address string) bool
}

var _ VisitedChecker = (*VisitedSet)(nil)

// VisitedSet is the set of links whose processing has completed. Membership
// is exact string equality; a Bloom filter answers most negative lookups
// before the map is consulted. Links are kept in insertion order.
// It is safe for concurrent use by multiple goroutines.
type VisitedSet struct {
	mu    sync.RWMutex
	links []linkcrawl.Link
	index map[string]struct{}
	seen  *bloom.Filter
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{
		index: make(map[string]struct{}),
		seen:  bloom.NewFilter(visitedExpectedURLs, visitedFalsePositiveRate),
	}
}

// Add records link as visited.
// Returns false if the address is already present.
func (s *VisitedSet) Add(link linkcrawl.Link) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[link.Address]; ok {
		return false
	}
	s.index[link.Address] = struct{}{}
	s.seen.Add(link.Address)
	s.links = append(s.links, link)
	return true
}

// Contains returns true if address has been visited.
func (s *VisitedSet) Contains(address string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.seen.MayContain(address) {
		return false
	}
	_, ok := s.index[address]
	return ok
}

// Len returns the number of visited links.
func (s *VisitedSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}

// Links returns a copy of the visited links in the order they were added.
func (s *VisitedSet) Links() []linkcrawl.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]linkcrawl.Link(nil), s.links...)
}
