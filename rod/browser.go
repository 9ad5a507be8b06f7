package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/linkcrawl"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages a browser renders before it
// is replaced by a fresh process.
const DefaultRecycleAfter = 75

// Browser owns a headless Chrome process and replaces it after a fixed
// number of pages. Long crawls otherwise accumulate renderer memory that
// closing pages never gives back. A replaced process stays up until the
// last page rendered on it is released.
//
// Browser is safe for concurrent use.
type Browser struct {
	mu           sync.Mutex
	current      *process
	uses         int
	recycleAfter int
	closed       bool
}

// process is one launched Chrome and the number of pages rendering on it.
type process struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	active   int
	retired  bool
}

// NewBrowser launches a headless Chrome. A recycleAfter of zero or less
// selects DefaultRecycleAfter.
func NewBrowser(recycleAfter int) (*Browser, error) {
	if recycleAfter <= 0 {
		recycleAfter = DefaultRecycleAfter
	}
	p, err := launch()
	if err != nil {
		return nil, err
	}
	return &Browser{current: p, recycleAfter: recycleAfter}, nil
}

// acquire returns the browser to render the next page with and a release
// func the caller must invoke once the page is closed. Once the use count
// reaches the limit a new process is started; if that fails the old one
// keeps serving.
func (b *Browser) acquire() (*rod.Browser, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, linkcrawl.Errorf(linkcrawl.EINVALID, "browser closed")
	}
	if b.uses >= b.recycleAfter {
		b.recycle()
	}
	b.uses++

	p := b.current
	p.active++
	release := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		p.active--
		if p.retired && p.active == 0 {
			_ = p.shutdown()
		}
	}
	return p.browser, release, nil
}

// LauncherPID returns the process ID of the current browser, or zero once
// the Browser is closed.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return 0
	}
	return b.current.launcher.PID()
}

// Close shuts the current browser down. Calling Close more than once is a
// no-op.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	p := b.current
	b.current = nil
	return p.shutdown()
}

// recycle must be called with mu held.
func (b *Browser) recycle() {
	next, err := launch()
	if err != nil {
		return
	}
	old := b.current
	b.current = next
	b.uses = 0

	old.retired = true
	if old.active == 0 {
		_ = old.shutdown()
	}
}

func launch() (*process, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &process{browser: browser, launcher: l}, nil
}

func (p *process) shutdown() error {
	err := p.browser.Close()
	p.launcher.Kill()
	return err
}
