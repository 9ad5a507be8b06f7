// Package bloom provides a probabilistic pre-check for address sets.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by URL address.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected addresses
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records address in the filter.
func (f *Filter) Add(address string) {
	f.f.AddString(address)
}

// MayContain returns false if address was definitely never added.
// A true result may be a false positive and must be confirmed by an
// exact lookup.
func (f *Filter) MayContain(address string) bool {
	return f.f.TestString(address)
}

// EstimatedCount returns the approximate number of addresses added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
