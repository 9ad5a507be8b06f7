package crawl

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/linkcrawl"
)

// Page fetches a single link and extracts the links it points to.
type Page struct {
	Link      *linkcrawl.Link
	Fetcher   linkcrawl.Fetcher
	Extractor linkcrawl.HrefExtractor

	// InvalidHrefs collects href values that could not be resolved during
	// the last call to FetchAndExtract.
	InvalidHrefs []string
}

// FetchAndExtract fetches the page and returns the absolute URLs it links
// to that pass IsAccepted, are not in visited, and have not been returned
// earlier in the same call. URLs are returned in document order.
//
// Errors are coded EFETCH or EPARSE. Unresolvable hrefs are skipped and
// recorded in InvalidHrefs. On success the link is marked visited.
func (p *Page) FetchAndExtract(ctx context.Context, visited VisitedChecker) ([]string, error) {
	p.InvalidHrefs = nil

	base, err := url.Parse(p.Link.Address)
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.EFETCH, "invalid address %q: %w", p.Link.Address, err)
	}

	html, err := p.Fetcher.Fetch(ctx, p.Link.Address)
	if err != nil {
		if linkcrawl.ErrorCode(err) == linkcrawl.EFETCH {
			return nil, err
		}
		return nil, linkcrawl.Errorf(linkcrawl.EFETCH, "fetch %s: %w", p.Link.Address, err)
	}

	hrefs, err := p.Extractor.ExtractHrefs(html)
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.EPARSE, "parse %s: %w", p.Link.Address, err)
	}

	accepted := make(map[string]struct{})
	var links []string
	for _, href := range hrefs {
		resolved, ok := resolve(base, href)
		if !ok {
			p.InvalidHrefs = append(p.InvalidHrefs, href)
			continue
		}
		if _, dup := accepted[resolved]; dup {
			continue
		}
		if visited.Contains(resolved) {
			continue
		}
		if !linkcrawl.IsAccepted(resolved) {
			continue
		}
		accepted[resolved] = struct{}{}
		links = append(links, resolved)
	}

	p.Link.Visited = true

	return links, nil
}

// resolve joins href onto base. Leading and trailing whitespace is
// stripped first, as browsers do.
func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}
