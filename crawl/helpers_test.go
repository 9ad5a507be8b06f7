package crawl_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/mock"
)

// fakeWeb serves a fixed link graph. Fetching a page returns its address
// as the body and extracting hrefs from that body looks the address up,
// so tests describe pages purely by their outbound hrefs.
type fakeWeb struct {
	mu      sync.Mutex
	pages   map[string][]string
	fetches map[string]int
	order   []string
}

func newFakeWeb(pages map[string][]string) *fakeWeb {
	return &fakeWeb{
		pages:   pages,
		fetches: make(map[string]int),
	}
}

func (w *fakeWeb) Fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			w.mu.Lock()
			defer w.mu.Unlock()
			w.fetches[url]++
			w.order = append(w.order, url)
			if _, ok := w.pages[url]; !ok {
				return "", fmt.Errorf("HTTP 404 for %s", url)
			}
			return url, nil
		},
		CloseFn: func() error { return nil },
	}
}

func (w *fakeWeb) Extractor() *mock.HrefExtractor {
	return &mock.HrefExtractor{
		ExtractHrefsFn: func(html string) ([]string, error) {
			w.mu.Lock()
			defer w.mu.Unlock()
			return w.pages[html], nil
		},
	}
}

func (w *fakeWeb) FetchCount(url string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fetches[url]
}

func (w *fakeWeb) FetchOrder() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.order...)
}

// memoryStore records saved addresses in order.
type memoryStore struct {
	mu    sync.Mutex
	saved []string
	fail  map[string]error
}

func (s *memoryStore) LinkStore() *mock.LinkStore {
	return &mock.LinkStore{
		SaveLinkFn: func(_ context.Context, address string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if err := s.fail[address]; err != nil {
				return err
			}
			s.saved = append(s.saved, address)
			return nil
		},
	}
}

func (s *memoryStore) Saved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saved...)
}

// eventRecorder collects crawl events.
type eventRecorder struct {
	mu     sync.Mutex
	events []linkcrawl.Event
}

func (r *eventRecorder) Record(event linkcrawl.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) OfType(typ linkcrawl.EventType) []linkcrawl.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []linkcrawl.Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func addresses(links []linkcrawl.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Address
	}
	return out
}
