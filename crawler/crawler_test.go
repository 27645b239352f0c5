package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsdeck/config"
	"newsdeck/storage"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>The Verge</title>
    <item>
      <title>Feed story one</title>
      <link>https://www.theverge.com/2025/7/14/one</link>
      <description>First body.</description>
      <pubDate>Mon, 14 Jul 2025 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Feed story two</title>
      <link>https://www.theverge.com/2025/7/14/two</link>
      <description>Second body.</description>
      <pubDate>Sun, 13 Jul 2025 22:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

const testListing = `<html><body>
<div data-chorus-optimize-field="collection">
  <article>
    <h2><a href="/2025/7/14/scraped">Scraped story</a></h2>
    <p>Scraped body.</p>
    <time datetime="2025-07-14T08:00:00Z">July 14</time>
  </article>
</div>
</body></html>`

// testSite builds a theverge-shaped config pointing at a test server.
func testSite(srvURL string, fallbackToHTML bool) config.SiteConfig {
	site, _ := config.Site("theverge")
	site.BaseURL = srvURL + "/"
	site.FeedURL = srvURL + "/rss/index.xml"
	site.FallbackToHTML = fallbackToHTML
	return site
}

func newEngine(t *testing.T, site config.SiteConfig) (*Engine, *storage.FileStore) {
	t.Helper()
	store := storage.NewFileStore(t.TempDir())
	e := New(Config{
		Store: store,
		Delay: time.Millisecond,
		Sites: []config.SiteConfig{site},
	})
	return e, store
}

func TestCrawlSourceUnknown(t *testing.T) {
	e, _ := newEngine(t, config.SiteConfig{Name: "theverge"})
	res := e.CrawlSource(context.Background(), "nosuch")
	if res.Success {
		t.Fatal("crawl of unknown source succeeded")
	}
	if !strings.Contains(res.Error, "unknown source") {
		t.Fatalf("error = %q", res.Error)
	}
	if res.RunID == "" {
		t.Fatal("failed result missing run ID")
	}
}

func TestCrawlSourceViaFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rss/index.xml" {
			http.NotFound(w, r)
			return
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("fetch used default user agent: %q", ua)
		}
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	e, store := newEngine(t, testSite(srv.URL, false))
	res := e.CrawlSource(context.Background(), "theverge")
	if !res.Success {
		t.Fatalf("crawl failed: %s", res.Error)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("got %d articles; want 2", len(res.Articles))
	}
	if res.PagesProcessed != 1 {
		t.Errorf("pages = %d; want 1", res.PagesProcessed)
	}

	// Articles land in per-date containers keyed by publication day
	if got := store.Load("theverge", "2025-07-14"); len(got) != 1 {
		t.Errorf("2025-07-14 container has %d articles; want 1", len(got))
	}
	if got := store.Load("theverge", "2025-07-13"); len(got) != 1 {
		t.Errorf("2025-07-13 container has %d articles; want 1", len(got))
	}
}

func TestCrawlSourceIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	e, store := newEngine(t, testSite(srv.URL, false))
	for i := 0; i < 2; i++ {
		if res := e.CrawlSource(context.Background(), "theverge"); !res.Success {
			t.Fatalf("crawl %d failed: %s", i, res.Error)
		}
	}
	if got := store.Load("theverge", "2025-07-14"); len(got) != 1 {
		t.Fatalf("repeat crawl duplicated articles: %d in container", len(got))
	}
}

func TestCrawlSourceAPIFailureFallsThroughToFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	// API configured but no client wired: the strategy fails and the feed
	// must still be attempted.
	site := testSite(srv.URL, false)
	site.HasAPI = true
	site.APIEndpoint = srv.URL + "/api"

	e, _ := newEngine(t, site)
	res := e.CrawlSource(context.Background(), "theverge")
	if !res.Success {
		t.Fatalf("crawl failed although the feed was reachable: %s", res.Error)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("got %d articles; want 2 from the feed", len(res.Articles))
	}
}

func TestCrawlSourceFeedFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rss/index.xml" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, testListing)
	}))
	defer srv.Close()

	e, _ := newEngine(t, testSite(srv.URL, false))
	res := e.CrawlSource(context.Background(), "theverge")
	if res.Success {
		t.Fatal("crawl succeeded although the feed failed and HTML fallback is off")
	}
}

func TestCrawlSourceFeedFallsBackToHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rss/index.xml" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, testListing)
	}))
	defer srv.Close()

	e, store := newEngine(t, testSite(srv.URL, true))
	res := e.CrawlSource(context.Background(), "theverge")
	if !res.Success {
		t.Fatalf("crawl failed: %s", res.Error)
	}
	if len(res.Articles) != 1 {
		t.Fatalf("got %d articles; want 1 from the listing page", len(res.Articles))
	}
	if got := store.Load("theverge", "2025-07-14"); len(got) != 1 {
		t.Errorf("container has %d articles; want 1", len(got))
	}
}

func TestCrawlAllContinuesPastFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	good := testSite(srv.URL, false)
	bad := good
	bad.Name = "techcrunch"
	bad.DisplayName = "TechCrunch"
	bad.FeedURL = "http://127.0.0.1:1/feed"

	store := storage.NewFileStore(t.TempDir())
	e := New(Config{
		Store: store,
		Delay: time.Millisecond,
		Sites: []config.SiteConfig{bad, good},
	})

	results := e.CrawlAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("got %d results; want 2", len(results))
	}
	if results[0].Source != "techcrunch" || results[0].Success {
		t.Errorf("results[0] = %s success=%v; want techcrunch failure", results[0].Source, results[0].Success)
	}
	if results[1].Source != "theverge" || !results[1].Success {
		t.Errorf("results[1] = %s success=%v; want theverge success", results[1].Source, results[1].Success)
	}
}

func TestCrawlAllHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	first := testSite(srv.URL, false)
	second := first
	second.Name = "techcrunch"

	store := storage.NewFileStore(t.TempDir())
	e := New(Config{
		Store: store,
		Delay: time.Minute,
		Sites: []config.SiteConfig{first, second},
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	results := e.CrawlAll(ctx)
	if len(results) != 1 {
		t.Fatalf("got %d results after cancellation; want 1", len(results))
	}
}

// fakeSeenFilter records Mark calls and fails the ones listed in markErrs.
type fakeSeenFilter struct {
	seen     map[string]bool
	seenErr  error
	marked   []string
	markErrs map[string]error
}

func (f *fakeSeenFilter) Seen(rawURL string) (bool, error) {
	if f.seenErr != nil {
		return false, f.seenErr
	}
	return f.seen[rawURL], nil
}

func (f *fakeSeenFilter) Mark(rawURL string) error {
	f.marked = append(f.marked, rawURL)
	return f.markErrs[rawURL]
}

func TestMarkSeenContinuesPastFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	filter := &fakeSeenFilter{
		markErrs: map[string]error{
			"https://www.theverge.com/2025/7/14/one": fmt.Errorf("connection reset"),
		},
	}
	store := storage.NewFileStore(t.TempDir())
	e := New(Config{
		Store: store,
		Seen:  filter,
		Delay: time.Millisecond,
		Sites: []config.SiteConfig{testSite(srv.URL, false)},
	})

	if res := e.CrawlSource(context.Background(), "theverge"); !res.Success {
		t.Fatalf("crawl failed: %s", res.Error)
	}
	// Both URLs must be attempted even though the first mark failed
	if len(filter.marked) != 2 {
		t.Fatalf("marked %d URLs; want 2: %v", len(filter.marked), filter.marked)
	}
}

func TestFilterSeenSkipsKnownURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	filter := &fakeSeenFilter{
		seen: map[string]bool{"https://www.theverge.com/2025/7/14/one": true},
	}
	store := storage.NewFileStore(t.TempDir())
	e := New(Config{
		Store: store,
		Seen:  filter,
		Delay: time.Millisecond,
		Sites: []config.SiteConfig{testSite(srv.URL, false)},
	})

	res := e.CrawlSource(context.Background(), "theverge")
	if !res.Success {
		t.Fatalf("crawl failed: %s", res.Error)
	}
	if len(res.Articles) != 1 {
		t.Fatalf("got %d articles; want 1 after the seen filter", len(res.Articles))
	}
	if res.Articles[0].URL != "https://www.theverge.com/2025/7/14/two" {
		t.Errorf("kept %q; want the unseen URL", res.Articles[0].URL)
	}
}

func TestFilterSeenDegradesToKeepingOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	filter := &fakeSeenFilter{seenErr: fmt.Errorf("redis unavailable")}
	store := storage.NewFileStore(t.TempDir())
	e := New(Config{
		Store: store,
		Seen:  filter,
		Delay: time.Millisecond,
		Sites: []config.SiteConfig{testSite(srv.URL, false)},
	})

	res := e.CrawlSource(context.Background(), "theverge")
	if !res.Success {
		t.Fatalf("crawl failed: %s", res.Error)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("got %d articles; want 2 kept despite filter errors", len(res.Articles))
	}
}

func TestHTMLStrategyPagination(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
		<div data-chorus-optimize-field="collection">
		  <article><h2><a href="/2025/7/14/page1">Page one story</a></h2><p>Body.</p></article>
		</div>
		<a class="p-pagination__next" href="%s/archives/2">Next</a>
		</body></html>`, srvURL)
	})
	mux.HandleFunc("/archives/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
		<div data-chorus-optimize-field="collection">
		  <article><h2><a href="/2025/7/14/page2">Page two story</a></h2><p>Body.</p></article>
		</div>
		</body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	site := testSite(srv.URL, false)
	site.FeedURL = ""

	e, _ := newEngine(t, site)
	res := e.CrawlSource(context.Background(), "theverge")
	if !res.Success {
		t.Fatalf("crawl failed: %s", res.Error)
	}
	if res.PagesProcessed != 2 {
		t.Errorf("pages = %d; want 2", res.PagesProcessed)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("got %d articles; want 2", len(res.Articles))
	}
}
