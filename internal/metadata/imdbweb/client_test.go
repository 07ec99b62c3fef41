package imdbweb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"streamscout/internal/config"
	"streamscout/internal/httpx"
	"streamscout/internal/services"
)

const currentTitlePage = `<html><body>
<h1 data-testid="hero__pageTitle"><span class="hero__primary-text">Inception</span></h1>
<ul data-testid="hero-title-block__metadata">
  <li><a href="/title/tt1375666/releaseinfo">2010</a></li>
</ul>
<li data-testid="title-techspec_runtime"><div>2h 28m</div></li>
</body></html>`

const legacyTitlePage = `<html><body>
<h1>Inception <span id="titleYear">(<a href="/year/2010/">2010</a>)</span></h1>
<time datetime="PT148M">148 min</time>
</body></html>`

const legacyEpisodePage = `<html><body>
<div class="list_item">
  <meta itemprop="episodeNumber" content="4"/>
  <a itemprop="name" href="/title/tt0606111/">Duet</a>
</div>
<div class="list_item">
  <meta itemprop="episodeNumber" content="5"/>
  <a itemprop="name" href="/title/tt0606035/">Bringing Out the Dead</a>
</div>
</body></html>`

const currentEpisodePage = `<html><body>
<article class="episode-item-wrapper">
  <div data-testid="slate-list-card-title"><a href="/title/tt0606111/">S1.E4 ∙ Duet</a></div>
</article>
<article class="episode-item-wrapper">
  <div data-testid="slate-list-card-title"><a href="/title/tt0606035/">S1.E5 ∙ Bringing Out the Dead</a></div>
</article>
</body></html>`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient, err := httpx.New(httpx.Options{Timeout: 5 * time.Second, UserAgent: "test"})
	if err != nil {
		t.Fatalf("httpx.New returned error: %v", err)
	}
	client, err := New(server.URL, httpClient, config.Default().IMDB.Selectors)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestTitlePageCurrentMarkup(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/title/tt1375666/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(currentTitlePage))
	}))

	info, err := client.TitlePage(context.Background(), "tt1375666")
	if err != nil {
		t.Fatalf("TitlePage returned error: %v", err)
	}
	if info.Title != "Inception" {
		t.Fatalf("unexpected title %q", info.Title)
	}
	if info.Year != 2010 {
		t.Fatalf("unexpected year %d", info.Year)
	}
	if info.Runtime != 148 {
		t.Fatalf("unexpected runtime %d", info.Runtime)
	}
}

func TestTitlePageLegacyMarkupFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(legacyTitlePage))
	}))

	info, err := client.TitlePage(context.Background(), "tt1375666")
	if err != nil {
		t.Fatalf("TitlePage returned error: %v", err)
	}
	// Legacy h1 text includes the year suffix; the title selector falls back
	// to the whole heading, which is still a usable display title.
	if info.Title == "" {
		t.Fatal("expected a title from fallback selectors")
	}
	if info.Year != 2010 {
		t.Fatalf("unexpected year %d", info.Year)
	}
	if info.Runtime != 148 {
		t.Fatalf("unexpected runtime %d", info.Runtime)
	}
}

func TestTitlePageWithoutTitleIsParseError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>captcha</p></body></html>`))
	}))

	_, err := client.TitlePage(context.Background(), "tt1375666")
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestEpisodeTitleLegacyMarkup(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("season") != "1" {
			t.Fatalf("expected season query, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(legacyEpisodePage))
	}))

	title, err := client.EpisodeTitle(context.Background(), "tt0414762", 1, 5)
	if err != nil {
		t.Fatalf("EpisodeTitle returned error: %v", err)
	}
	if title != "Bringing Out the Dead" {
		t.Fatalf("unexpected episode title %q", title)
	}
}

func TestEpisodeTitleCurrentMarkup(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentEpisodePage))
	}))

	title, err := client.EpisodeTitle(context.Background(), "tt0414762", 1, 5)
	if err != nil {
		t.Fatalf("EpisodeTitle returned error: %v", err)
	}
	if title != "Bringing Out the Dead" {
		t.Fatalf("unexpected episode title %q", title)
	}
}

func TestEpisodeTitleMissingEpisode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(legacyEpisodePage))
	}))

	_, err := client.EpisodeTitle(context.Background(), "tt0414762", 1, 9)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseRuntimeMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2h 28m", 148},
		{"45m", 45},
		{"148 min", 148},
		{"", 0},
		{"N/A", 0},
	}
	for _, tc := range cases {
		if got := parseRuntimeMinutes(tc.in); got != tc.want {
			t.Fatalf("parseRuntimeMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
