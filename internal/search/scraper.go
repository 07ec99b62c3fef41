package search

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"streamscout/internal/config"
	"streamscout/internal/httpx"
	"streamscout/internal/logging"
	"streamscout/internal/media"
	"streamscout/internal/scrape"
)

// Scraper fetches search-engine result pages and extracts candidate records
// from their markup. Queries run sequentially, paced by a rate limiter, and
// each query's failure is isolated: it logs, records a zero-count stat, and
// the remaining queries still run.
type Scraper struct {
	baseURL   string
	http      *httpx.Client
	limiter   *rate.Limiter
	selectors config.GoogleSelectors
	logger    *slog.Logger
}

// NewScraper creates a result-page scraper from the search configuration.
func NewScraper(cfg config.Search, httpClient *httpx.Client, logger *slog.Logger) (*Scraper, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("search base url required")
	}
	if httpClient == nil {
		return nil, errors.New("http client required")
	}
	interval := cfg.MinInterval()
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Scraper{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		selectors: cfg.Selectors,
		logger:    logging.NewComponentLogger(logger, "search"),
	}, nil
}

// Search scrapes every query in order and returns the combined candidate
// list plus per-query stats. Candidate URLs are deduplicated across all
// queries of the call, so a later query never re-contributes a URL an
// earlier one already found.
func (s *Scraper) Search(ctx context.Context, queries []string) ([]media.Candidate, []media.QueryStat) {
	logger := logging.WithContext(ctx, s.logger)

	var candidates []media.Candidate
	stats := make([]media.QueryStat, 0, len(queries))
	seen := make(map[string]struct{})

	for _, query := range queries {
		if err := s.limiter.Wait(ctx); err != nil {
			logger.Warn("scrape aborted", logging.Error(err))
			stats = append(stats, media.QueryStat{Query: query})
			continue
		}

		body, err := s.http.Get(ctx, ResultURL(s.baseURL, query))
		if err != nil {
			logger.Warn("query failed",
				logging.String(logging.FieldQuery, query),
				logging.Error(err))
			stats = append(stats, media.QueryStat{Query: query})
			continue
		}

		found := s.extract(body, seen)
		candidates = append(candidates, found...)
		stats = append(stats, media.QueryStat{Query: query, Count: len(found)})
		logger.Debug("query scraped",
			logging.String(logging.FieldQuery, query),
			logging.Int("candidates", len(found)))
	}

	return candidates, stats
}

// extract walks the result containers of one response body. seen is the
// request-wide dedup set; accepted URLs are added to it.
func (s *Scraper) extract(body []byte, seen map[string]struct{}) []media.Candidate {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var out []media.Candidate
	scrape.AllMatches(doc.Selection, s.selectors.ResultItem).Each(func(index int, item *goquery.Selection) {
		link := resolveLink(scrape.FirstAttr(item, s.selectors.Link, "href"))
		if link == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		title := scrape.FirstText(item, s.selectors.Title)
		if title == "" {
			return
		}
		seen[link] = struct{}{}
		out = append(out, media.Candidate{
			Title:    title,
			URL:      link,
			Source:   sourceLabel(scrape.FirstText(item, s.selectors.Source)),
			Duration: scrape.FirstText(item, s.selectors.Duration),
			Index:    index,
		})
	})
	return out
}

// resolveLink unwraps the intermediate "/url?q=<target>" redirect scheme and
// accepts only absolute http(s) URLs. Anything else returns "".
func resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/url?") {
		parsed, err := url.Parse(href)
		if err != nil {
			return ""
		}
		href = parsed.Query().Get("q")
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ""
	}
	return parsed.String()
}

// sourceLabel reduces a citation string like "www.youtube.com › watch" to
// the bare site name.
func sourceLabel(cite string) string {
	label := cite
	if idx := strings.Index(label, " › "); idx >= 0 {
		label = label[:idx]
	}
	label = strings.TrimPrefix(strings.TrimSpace(label), "www.")
	return strings.TrimSpace(label)
}
