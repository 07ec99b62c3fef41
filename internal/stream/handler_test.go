package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"streamscout/internal/config"
	"streamscout/internal/media"
	"streamscout/internal/scoring"
)

type pipelineFixture struct {
	cfg *config.Config

	mu            sync.Mutex
	googleQueries []string

	tmdbDown   bool
	googleDown bool
	googlePage string
}

func googleItem(href, title, cite, duration string) string {
	return fmt.Sprintf(`<div class="vt6azd"><a href=%q><h3 class="LC20lb">%s</h3></a>
<cite>%s</cite><div class="c8rnLc"><span>%s</span></div></div>`, href, title, cite, duration)
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{}

	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.tmdbDown {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/find/"):
			_, _ = w.Write([]byte(`{"movie_results":[{"id":27205,"title":"Inception","release_date":"2010-07-15"}],"tv_results":[{"id":2316,"name":"The Office","first_air_date":"2005-03-24"}]}`))
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			_, _ = w.Write([]byte(`{"id":27205,"title":"Inception","release_date":"2010-07-15","runtime":148,"external_ids":{"imdb_id":"tt1375666"}}`))
		case strings.Contains(r.URL.Path, "/season/"):
			_, _ = w.Write([]byte(`{"id":1,"name":"Basketball","season_number":1,"episode_number":5,"runtime":23}`))
		case strings.HasPrefix(r.URL.Path, "/tv/"):
			_, _ = w.Write([]byte(`{"id":2316,"name":"The Office","first_air_date":"2005-03-24","episode_run_time":[22],"external_ids":{"imdb_id":"tt0386676"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(tmdbServer.Close)

	googleServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.googleQueries = append(f.googleQueries, r.URL.Query().Get("q"))
		f.mu.Unlock()
		if f.googleDown {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(f.googlePage))
	}))
	t.Cleanup(googleServer.Close)

	imdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(imdbServer.Close)

	cfg := config.Default()
	cfg.TMDB.APIKey = "key"
	cfg.TMDB.BaseURL = tmdbServer.URL
	cfg.IMDB.BaseURL = imdbServer.URL
	cfg.Search.BaseURL = googleServer.URL + "/search"
	cfg.Search.MinIntervalMillis = 1
	cfg.HTTP.RetryAttempts = 1
	cfg.HTTP.RetryDelaySeconds = 0
	f.cfg = &cfg
	return f
}

func (f *pipelineFixture) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.googleQueries...)
}

func newHandler(t *testing.T, f *pipelineFixture) *Handler {
	t.Helper()
	h, err := NewHandler(f.cfg, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h
}

func TestStreamsMoviePipeline(t *testing.T) {
	f := newPipelineFixture(t)
	f.googlePage = "<html><body>" +
		googleItem("https://www.youtube.com/watch?v=abc", "Inception Full Movie | YouTube", "www.youtube.com › watch", "2:28:00") +
		googleItem("https://example.com/v/1", "Inception behind the scenes clip", "example.com", "") +
		"</body></html>"
	h := newHandler(t, f)

	streams := h.Streams(context.Background(), media.KindMovie, "tt1375666")

	if len(streams) < 3 {
		t.Fatalf("expected selected candidates plus fallbacks, got %d: %+v", len(streams), streams)
	}
	first := streams[0]
	if first.ExternalURL != "https://www.youtube.com/watch?v=abc" {
		t.Fatalf("whitelisted exact match should rank first, got %q", first.ExternalURL)
	}
	if !strings.HasPrefix(first.Title, "[youtube.com] Inception Full Movie") {
		t.Fatalf("formatted title should carry source prefix and cleaned title, got %q", first.Title)
	}
	if !strings.Contains(first.Title, "Duration: 2:28:00") {
		t.Fatalf("formatted title should carry the duration line, got %q", first.Title)
	}
	if strings.Contains(first.Title, "YouTube") {
		t.Fatalf("platform suffix should be stripped, got %q", first.Title)
	}

	tail := streams[len(streams)-2:]
	if !strings.HasPrefix(tail[0].Title, "[Google] Search: Inception 2010 full movie") {
		t.Fatalf("missing search fallback, got %q", tail[0].Title)
	}
	if tail[1].ExternalURL != f.cfg.IMDB.BaseURL+"/title/tt1375666/" {
		t.Fatalf("missing provider page fallback, got %q", tail[1].ExternalURL)
	}

	if got := f.queries(); len(got) != 1 || got[0] != "Inception 2010 full movie" {
		t.Fatalf("unexpected scraped queries %v", got)
	}
}

func TestStreamsSeriesQueriesIncludeEpisodeTitle(t *testing.T) {
	f := newPipelineFixture(t)
	f.googlePage = "<html><body>" +
		googleItem("https://www.dailymotion.com/video/x1", "The Office S01E05 Basketball", "www.dailymotion.com › video", "22:30") +
		"</body></html>"
	h := newHandler(t, f)

	streams := h.Streams(context.Background(), media.KindSeries, "tt0386676:1:5")

	queries := f.queries()
	if len(queries) != 2 || queries[0] != "The Office S01E05" || queries[1] != "The Office S01E05 Basketball" {
		t.Fatalf("unexpected queries %v", queries)
	}
	if len(streams) == 0 || !strings.HasPrefix(streams[0].Title, "[dailymotion.com]") {
		t.Fatalf("expected the scraped candidate first, got %+v", streams)
	}

	var sawSpacedFallback, sawEpisodeTitleFallback bool
	for _, s := range streams {
		if strings.Contains(s.Title, "The Office S01 E05") {
			sawSpacedFallback = true
		}
		if strings.Contains(s.Title, "The Office S01 E05 Basketball") {
			sawEpisodeTitleFallback = true
		}
	}
	if !sawSpacedFallback {
		t.Fatalf("fallback should use the spaced season/episode form: %+v", streams)
	}
	if !sawEpisodeTitleFallback {
		t.Fatalf("known episode title should add a more specific fallback link: %+v", streams)
	}
}

func TestStreamsFullFailureYieldsFallbacksOnly(t *testing.T) {
	f := newPipelineFixture(t)
	f.tmdbDown = true
	f.googleDown = true
	h := newHandler(t, f)

	streams := h.Streams(context.Background(), media.KindMovie, "tt1375666")

	if len(streams) == 0 {
		t.Fatal("full failure must still yield fallback records")
	}
	for _, s := range streams {
		if !strings.HasPrefix(s.Title, "[Google]") && !strings.HasPrefix(s.Title, "[IMDb]") {
			t.Fatalf("expected fallback-only output, got %q", s.Title)
		}
	}
	// The synthetic placeholder title still drives the search link.
	if !strings.Contains(strings.ToLower(streams[0].Title), "tt1375666") {
		t.Fatalf("fallback query should carry the placeholder title, got %q", streams[0].Title)
	}
}

func TestStreamsInvalidIdentifierYieldsManualSearchLink(t *testing.T) {
	f := newPipelineFixture(t)
	h := newHandler(t, f)

	streams := h.Streams(context.Background(), media.KindSeries, "tt123")

	if len(streams) != 1 {
		t.Fatalf("malformed series id should yield the single manual-search record, got %+v", streams)
	}
	if !strings.Contains(streams[0].Title, "search manually") {
		t.Fatalf("unexpected record title %q", streams[0].Title)
	}
	if streams[0].ExternalURL != f.cfg.Search.BaseURL {
		t.Fatalf("record should point at the bare search engine, got %q", streams[0].ExternalURL)
	}
	if got := f.queries(); len(got) != 0 {
		t.Fatalf("no scraping should run for a malformed id, got %v", got)
	}
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Inception Full Movie | YouTube", "Inception Full Movie"},
		{"Inception Full Movie - YouTube", "Inception Full Movie"},
		{"Full movie - video Dailymotion", "Full movie"},
		{"Some Stream | Facebook", "Some Stream"},
		{"Trailing noise -, | ", "Trailing noise"},
		{"Untouched Title", "Untouched Title"},
	}
	for _, tc := range cases {
		if got := cleanTitle(tc.in); got != tc.want {
			t.Fatalf("cleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCandidateWithoutSource(t *testing.T) {
	s := scoring.Scored{Candidate: media.Candidate{Title: "Some video", URL: "https://example.com/1"}}
	got := formatCandidate(s)
	if got.Title != "[Stream] Some video" {
		t.Fatalf("missing source should default to Stream, got %q", got.Title)
	}
	if !got.IsExternal {
		t.Fatal("candidate records are external links")
	}
}
