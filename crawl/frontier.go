package crawl

import (
	"context"

	"github.com/fwojciec/linkcrawl"
	"golang.org/x/sync/errgroup"
)

// Frontier drives a crawl from a single seed URL. It owns the visited set
// and a stack of pending links; the most recently discovered link is
// processed next, giving a depth-first traversal.
//
// A Frontier is used for one crawl. Its inspection methods must not be
// called while Crawl is running.
type Frontier struct {
	restrictDomain bool

	fetcher   linkcrawl.Fetcher
	extractor linkcrawl.HrefExtractor
	store     linkcrawl.LinkStore
	progress  linkcrawl.EventFunc
	workers   int
	maxPages  int

	visited *VisitedSet
	pending []*linkcrawl.Link
	// queued counts the copies of each address currently in pending.
	queued map[string]int
}

// Option configures a Frontier.
type Option func(*Frontier)

// WithFetcher sets the fetcher used to retrieve pages.
func WithFetcher(fetcher linkcrawl.Fetcher) Option {
	return func(f *Frontier) {
		f.fetcher = fetcher
	}
}

// WithExtractor sets the extractor used to find hrefs in fetched pages.
func WithExtractor(extractor linkcrawl.HrefExtractor) Option {
	return func(f *Frontier) {
		f.extractor = extractor
	}
}

// WithStore sets the store visited links are persisted to.
func WithStore(store linkcrawl.LinkStore) Option {
	return func(f *Frontier) {
		f.store = store
	}
}

// WithProgress sets the callback that receives crawl events.
func WithProgress(fn linkcrawl.EventFunc) Option {
	return func(f *Frontier) {
		f.progress = fn
	}
}

// WithWorkers sets the number of pages fetched concurrently.
// Values below 2 keep the sequential loop.
func WithWorkers(n int) Option {
	return func(f *Frontier) {
		f.workers = n
	}
}

// WithMaxPages stops the crawl after n pages have been processed.
// Zero means no limit.
func WithMaxPages(n int) Option {
	return func(f *Frontier) {
		f.maxPages = n
	}
}

// NewFrontier creates a Frontier with seed as its only pending link.
// When restrictDomain is true, links to a host other than the page they
// were found on are dropped.
func NewFrontier(seed string, restrictDomain bool, opts ...Option) *Frontier {
	f := &Frontier{
		restrictDomain: restrictDomain,
		workers:        1,
		visited:        NewVisitedSet(),
		queued:         make(map[string]int),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.push(seed)
	return f
}

// Result holds the outcome of a crawl. The counters are informational.
type Result struct {
	Visited      int
	Discovered   int
	FetchFailed  int
	SaveFailed   int
	InvalidHrefs int

	// Stopped is true if the crawl ended on cancellation or the page limit
	// while links were still pending.
	Stopped bool
}

// Crawl processes pending links until none remain. Failures to fetch,
// parse or save a link are reported through the progress callback and
// counted in the result; they never end the crawl. Cancelling ctx stops
// the crawl after in-flight pages complete.
//
// The returned error is non-nil only if the Frontier is missing a
// collaborator.
func (f *Frontier) Crawl(ctx context.Context) (*Result, error) {
	if f.fetcher == nil {
		return nil, linkcrawl.Errorf(linkcrawl.EINVALID, "frontier fetcher required")
	}
	if f.extractor == nil {
		return nil, linkcrawl.Errorf(linkcrawl.EINVALID, "frontier extractor required")
	}
	if f.store == nil {
		return nil, linkcrawl.Errorf(linkcrawl.EINVALID, "frontier store required")
	}

	var result Result
	if f.workers > 1 {
		f.crawlConcurrent(ctx, &result)
	} else {
		f.crawlSequential(ctx, &result)
	}

	result.Stopped = len(f.pending) > 0 || ctx.Err() != nil
	f.emit(linkcrawl.Event{Type: linkcrawl.EventFinished})
	return &result, nil
}

func (f *Frontier) crawlSequential(ctx context.Context, result *Result) {
	processed := 0
	for len(f.pending) > 0 {
		if ctx.Err() != nil || f.limitReached(processed) {
			return
		}

		current := f.pop()
		processed++
		f.emit(linkcrawl.Event{Type: linkcrawl.EventFetchStarted, URL: current.Address})

		page := f.newPage(current)
		discovered, err := page.FetchAndExtract(ctx, f.visited)
		f.reportInvalidHrefs(page, result)
		if err != nil {
			f.fail(ctx, current, err, result)
			continue
		}

		f.complete(ctx, current, discovered, result)
	}
}

// pageOutcome is what a worker reports back for one page.
type pageOutcome struct {
	page       *Page
	discovered []string
	err        error
}

// crawlConcurrent fans pages out to a bounded pool of workers. The calling
// goroutine stays the sole owner of pending and the only writer of the
// visited set; workers only fetch and extract.
func (f *Frontier) crawlConcurrent(ctx context.Context, result *Result) {
	workCh := make(chan *linkcrawl.Link)
	resultCh := make(chan pageOutcome)

	var g errgroup.Group
	for i := 0; i < f.workers; i++ {
		g.Go(func() error {
			for link := range workCh {
				page := f.newPage(link)
				discovered, err := page.FetchAndExtract(ctx, f.visited)
				resultCh <- pageOutcome{page: page, discovered: discovered, err: err}
			}
			return nil
		})
	}

	inflight := make(map[string]struct{})
	processed := 0

	for {
		var next *linkcrawl.Link
		var dispatch chan<- *linkcrawl.Link
		if ctx.Err() == nil && !f.limitReached(processed) {
			next = f.peekClaimable(inflight)
			if next != nil {
				dispatch = workCh
			}
		}
		if next == nil && len(inflight) == 0 {
			break
		}

		select {
		case dispatch <- next:
			f.pop()
			inflight[next.Address] = struct{}{}
			processed++
			f.emit(linkcrawl.Event{Type: linkcrawl.EventFetchStarted, URL: next.Address})

		case out := <-resultCh:
			current := out.page.Link
			delete(inflight, current.Address)
			f.reportInvalidHrefs(out.page, result)
			if out.err != nil {
				f.fail(ctx, current, out.err, result)
				continue
			}
			f.complete(ctx, current, out.discovered, result)
		}
	}

	close(workCh)
	_ = g.Wait()
}

// peekClaimable returns the top of the pending stack without removing it.
// Copies of addresses that are already being fetched are dropped from the
// top first, so no two workers ever hold the same address.
func (f *Frontier) peekClaimable(inflight map[string]struct{}) *linkcrawl.Link {
	for len(f.pending) > 0 {
		top := f.pending[len(f.pending)-1]
		if _, busy := inflight[top.Address]; !busy {
			return top
		}
		f.pop()
	}
	return nil
}

// complete pushes the links discovered on current, marks it visited and
// persists it.
func (f *Frontier) complete(ctx context.Context, current *linkcrawl.Link, discovered []string, result *Result) {
	for _, address := range discovered {
		if f.restrictDomain && !linkcrawl.SameDomain(current.Address, address) {
			continue
		}
		if f.push(address) {
			result.Discovered++
		}
	}

	current.Visited = true
	f.visited.Add(*current)
	f.purge(current.Address)
	result.Visited++

	if err := f.store.SaveLink(ctx, current.Address); err != nil {
		if linkcrawl.ErrorCode(err) != linkcrawl.ESTORE {
			err = linkcrawl.Errorf(linkcrawl.ESTORE, "save %s: %w", current.Address, err)
		}
		result.SaveFailed++
		f.emit(linkcrawl.Event{Type: linkcrawl.EventSaveFailed, URL: current.Address, Error: err})
		return
	}
	f.emit(linkcrawl.Event{Type: linkcrawl.EventSaved, URL: current.Address})
}

// fail records a fetch failure. A page interrupted by cancellation has not
// failed; it goes back on the stack so the result reports it as pending.
func (f *Frontier) fail(ctx context.Context, current *linkcrawl.Link, err error, result *Result) {
	if ctx.Err() != nil {
		f.push(current.Address)
		return
	}
	result.FetchFailed++
	f.emit(linkcrawl.Event{Type: linkcrawl.EventFetchFailed, URL: current.Address, Error: err})
}

func (f *Frontier) newPage(link *linkcrawl.Link) *Page {
	return &Page{
		Link:      link,
		Fetcher:   f.fetcher,
		Extractor: f.extractor,
	}
}

func (f *Frontier) reportInvalidHrefs(page *Page, result *Result) {
	for _, href := range page.InvalidHrefs {
		result.InvalidHrefs++
		f.emit(linkcrawl.Event{
			Type:  linkcrawl.EventInvalidHref,
			URL:   page.Link.Address,
			Href:  href,
			Error: linkcrawl.Errorf(linkcrawl.EHREF, "invalid href %q", href),
		})
	}
}

func (f *Frontier) limitReached(processed int) bool {
	return f.maxPages > 0 && processed >= f.maxPages
}

// push adds a pending link for address. Addresses already visited are
// refused; addresses already pending are pushed again.
func (f *Frontier) push(address string) bool {
	if f.visited.Contains(address) {
		return false
	}
	f.pending = append(f.pending, linkcrawl.NewLink(address))
	f.queued[address]++
	return true
}

// pop removes and returns the top of the pending stack.
func (f *Frontier) pop() *linkcrawl.Link {
	n := len(f.pending)
	link := f.pending[n-1]
	f.pending[n-1] = nil
	f.pending = f.pending[:n-1]
	f.queued[link.Address]--
	if f.queued[link.Address] <= 0 {
		delete(f.queued, link.Address)
	}
	return link
}

// purge removes every pending copy of address. It keeps pending and the
// visited set disjoint when an address was queued more than once.
func (f *Frontier) purge(address string) {
	if f.queued[address] == 0 {
		return
	}
	kept := f.pending[:0]
	for _, link := range f.pending {
		if link.Address != address {
			kept = append(kept, link)
		}
	}
	for i := len(kept); i < len(f.pending); i++ {
		f.pending[i] = nil
	}
	f.pending = kept
	delete(f.queued, address)
}

func (f *Frontier) emit(event linkcrawl.Event) {
	if f.progress == nil {
		return
	}
	event.Visited = f.visited.Len()
	event.Pending = len(f.pending)
	f.progress(event)
}

// Visited returns the visited links in the order they were processed.
func (f *Frontier) Visited() []linkcrawl.Link {
	return f.visited.Links()
}

// Pending returns the pending links from the bottom of the stack to the top.
func (f *Frontier) Pending() []linkcrawl.Link {
	links := make([]linkcrawl.Link, len(f.pending))
	for i, link := range f.pending {
		links[i] = *link
	}
	return links
}

// Len returns the number of pending links.
func (f *Frontier) Len() int {
	return len(f.pending)
}
