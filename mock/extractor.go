package mock

import "github.com/fwojciec/linkcrawl"

var _ linkcrawl.HrefExtractor = (*HrefExtractor)(nil)

// HrefExtractor is a mock implementation of linkcrawl.HrefExtractor.
type HrefExtractor struct {
	ExtractHrefsFn func(html string) ([]string, error)
}

func (e *HrefExtractor) ExtractHrefs(html string) ([]string, error) {
	return e.ExtractHrefsFn(html)
}
