//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/goquery"
	"github.com/fwojciec/linkcrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ linkcrawl.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_ReturnsScriptInsertedLinks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<body>
<nav id="nav"></nav>
<script>
const a = document.createElement('a');
a.href = 'https://docs.example.com/rendered';
a.textContent = 'Rendered';
document.getElementById('nav').appendChild(a);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	hrefs, err := goquery.NewExtractor().ExtractHrefs(html)
	require.NoError(t, err)
	assert.Contains(t, hrefs, "https://docs.example.com/rendered")
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, linkcrawl.EFETCH, linkcrawl.ErrorCode(err))
}

func TestFetcher_Fetch_SerializesShadowDOMLinks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<body>
<site-nav></site-nav>
<script>
class SiteNav extends HTMLElement {
  constructor() {
    super();
    const shadow = this.attachShadow({mode: 'open'});
    shadow.innerHTML = '<a href="/shadow-one" data-shadow="1">One</a><a href="/shadow-two" data-shadow="1">Two</a>';
  }
}
customElements.define('site-nav', SiteNav);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	// Two copies live in the script source; serialized shadow roots add two more.
	assert.Greater(t, strings.Count(html, `data-shadow="1"`), 2)
}

func TestFetcher_Fetch_RecyclesBrowser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><a href="/next">next</a></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithRecycleAfter(2))
	require.NoError(t, err)
	defer fetcher.Close()

	firstPID := fetcher.LauncherPID()
	for range 3 {
		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	assert.NotEqual(t, firstPID, fetcher.LauncherPID())
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "https://example.com")

	require.Error(t, err)
	assert.Equal(t, linkcrawl.EINVALID, linkcrawl.ErrorCode(err))
	assert.Contains(t, linkcrawl.ErrorMessage(err), "closed")
}

func TestFetcher_Fetch_RecycleKeepsInFlightPages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(500 * time.Millisecond)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><a href="/done">done</a></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithRecycleAfter(1))
	require.NoError(t, err)
	defer fetcher.Close()

	slowErr := make(chan error, 1)
	go func() {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/slow")
		slowErr <- err
	}()

	// Let the slow page claim the first browser before recycling it.
	time.Sleep(100 * time.Millisecond)
	firstPID := fetcher.LauncherPID()

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/fast")
	require.NoError(t, err)
	assert.NotEqual(t, firstPID, fetcher.LauncherPID())

	require.NoError(t, <-slowErr)
}

func TestBrowser_Close(t *testing.T) {
	t.Parallel()

	browser, err := rod.NewBrowser(0)
	require.NoError(t, err)

	assert.NotZero(t, browser.LauncherPID())

	require.NoError(t, browser.Close())
	assert.Zero(t, browser.LauncherPID())
	require.NoError(t, browser.Close())
}
