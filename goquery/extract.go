// Package goquery implements linkcrawl.HrefExtractor on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkcrawl"
)

// DefaultSelector matches every anchor that carries an href attribute.
const DefaultSelector = "a[href]"

// Ensure Extractor implements linkcrawl.HrefExtractor at compile time.
var _ linkcrawl.HrefExtractor = (*Extractor)(nil)

// Extractor pulls href values out of HTML using a CSS selector.
type Extractor struct {
	selector string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelector overrides the CSS selector used to find links.
// Matched elements without an href attribute are ignored.
func WithSelector(selector string) Option {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// NewExtractor creates a new Extractor that matches DefaultSelector.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{selector: DefaultSelector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractHrefs returns the raw href of every matched element in document
// order. Empty hrefs are kept; they refer to the page itself.
//
// The underlying HTML parser recovers from malformed markup, so an error is
// only returned when the document cannot be read at all. An invalid
// selector matches nothing.
func (e *Extractor) ExtractHrefs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.EPARSE, "failed to parse HTML: %v", err)
	}

	var hrefs []string
	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs, nil
}
