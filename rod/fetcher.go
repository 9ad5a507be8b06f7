package rod

import (
	"context"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// serializeJS returns the rendered document including open shadow roots,
// which page.HTML leaves out. Links inside web components are only
// reachable this way.
const serializeJS = `() => {
	const roots = [];
	const walk = (node) => {
		node.querySelectorAll('*').forEach((el) => {
			if (el.shadowRoot) {
				roots.push(el.shadowRoot);
				walk(el.shadowRoot);
			}
		});
	};
	walk(document);
	return document.documentElement.getHTML({shadowRoots: roots});
}`

var _ linkcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves JavaScript-rendered HTML using headless Chrome.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *Browser
	timeout      time.Duration
	recycleAfter int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the time allowed for navigating to and rendering
// a single page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter sets how many pages are rendered before the browser
// process is replaced.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher launches a headless Chrome and returns a Fetcher backed by it.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	browser, err := NewBrowser(f.recycleAfter)
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.EINTERNAL, "start browser: %w", err)
	}
	f.browser = browser
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the
// rendered document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, release, err := f.browser.acquire()
	if err != nil {
		return "", err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", linkcrawl.Errorf(linkcrawl.EFETCH, "open page for %s: %w", url, err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	if err := page.Navigate(url); err != nil {
		return "", linkcrawl.Errorf(linkcrawl.EFETCH, "navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", linkcrawl.Errorf(linkcrawl.EFETCH, "load %s: %w", url, err)
	}

	res, err := page.Eval(serializeJS)
	if err == nil {
		return res.Value.Str(), nil
	}

	html, err := page.HTML()
	if err != nil {
		return "", linkcrawl.Errorf(linkcrawl.EFETCH, "read %s: %w", url, err)
	}
	return html, nil
}

// LauncherPID returns the process ID of the current browser.
func (f *Fetcher) LauncherPID() int {
	return f.browser.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
