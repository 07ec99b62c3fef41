package imdbweb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"streamscout/internal/config"
	"streamscout/internal/httpx"
	"streamscout/internal/scrape"
	"streamscout/internal/services"
)

// TitleInfo is the subset of an IMDb title page the waterfall can recover
// when both API providers have failed.
type TitleInfo struct {
	Title   string
	Year    int
	Runtime int // minutes
}

// Client scrapes IMDb's public title and episode-listing pages. No
// credential is required; IMDb serves renderable markup to a browser-like
// user agent.
type Client struct {
	baseURL   string
	http      *httpx.Client
	selectors config.IMDBSelectors
}

// New creates an IMDb page scraper.
func New(baseURL string, httpClient *httpx.Client, selectors config.IMDBSelectors) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("imdb base url required")
	}
	if httpClient == nil {
		return nil, errors.New("http client required")
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		selectors: selectors,
	}, nil
}

// TitlePage scrapes title, year, and runtime from an IMDb title page.
// Fields that no selector candidate can locate are left zero; only a page
// yielding no title at all is an error.
func (c *Client) TitlePage(ctx context.Context, imdbID string) (TitleInfo, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return TitleInfo{}, errors.New("imdb id must not be empty")
	}

	pageURL := c.baseURL + "/title/" + url.PathEscape(imdbID) + "/"
	body, err := c.http.Get(ctx, pageURL)
	if err != nil {
		return TitleInfo{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return TitleInfo{}, services.Wrap(services.ErrParse, "imdbweb", "title-page", "parse html", err)
	}

	root := doc.Selection
	info := TitleInfo{
		Title:   scrape.FirstText(root, c.selectors.Title),
		Year:    firstYear(scrape.FirstText(root, c.selectors.Year)),
		Runtime: parseRuntimeMinutes(scrape.FirstText(root, c.selectors.Runtime)),
	}
	if info.Title == "" {
		return TitleInfo{}, services.Wrap(services.ErrParse, "imdbweb", "title-page", "no selector matched a title", nil)
	}
	return info, nil
}

// EpisodeTitle scrapes the episode-listing page of a series season and
// returns the display title of the requested episode. The listing has worn
// several markups over the years; each field is located through the
// configured selector candidates and episode numbers are matched either
// from an explicit episode-number attribute or from "S1.E5"-style markers
// in the listing text.
func (c *Client) EpisodeTitle(ctx context.Context, imdbID string, season, episode int) (string, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return "", errors.New("imdb id must not be empty")
	}
	if season < 0 || episode < 1 {
		return "", fmt.Errorf("invalid season/episode %d/%d", season, episode)
	}

	pageURL := fmt.Sprintf("%s/title/%s/episodes?season=%d", c.baseURL, url.PathEscape(imdbID), season)
	body, err := c.http.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", services.Wrap(services.ErrParse, "imdbweb", "episode-list", "parse html", err)
	}

	var found string
	doc.Find(strings.Join(c.selectors.EpisodeListItem, ", ")).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if episodeNumberOf(item, c.selectors.EpisodeNumber, season) != episode {
			return true
		}
		found = cleanEpisodeTitle(scrape.FirstText(item, c.selectors.EpisodeTitle))
		return found == ""
	})

	if found == "" {
		return "", services.Wrap(services.ErrNotFound, "imdbweb", "episode-list",
			fmt.Sprintf("episode %d not in season %d listing", episode, season), nil)
	}
	return found, nil
}

var (
	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	hourMinRe = regexp.MustCompile(`(?i)(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)`)
	minOnlyRe = regexp.MustCompile(`(\d+)\s*min`)
	seMarkRe  = regexp.MustCompile(`(?i)s(\d+)\s*[.·]\s*e(\d+)`)
)

func firstYear(s string) int {
	match := yearRe.FindString(s)
	if match == "" {
		return 0
	}
	year, _ := strconv.Atoi(match)
	return year
}

// parseRuntimeMinutes handles both display forms IMDb uses: "2h 28m" and
// "148 min".
func parseRuntimeMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if m := minOnlyRe.FindStringSubmatch(s); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		return minutes
	}
	if m := hourMinRe.FindStringSubmatch(s); m != nil {
		hours := 0
		if m[1] != "" {
			hours, _ = strconv.Atoi(m[1])
		}
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes
	}
	return 0
}

func episodeNumberOf(item *goquery.Selection, selectors []string, season int) int {
	if content := scrape.FirstAttr(item, selectors, "content"); content != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(content)); err == nil {
			return n
		}
	}
	text := scrape.FirstText(item, selectors)
	if m := seMarkRe.FindStringSubmatch(text); m != nil {
		s, _ := strconv.Atoi(m[1])
		if s != season {
			return 0
		}
		n, _ := strconv.Atoi(m[2])
		return n
	}
	return 0
}

// cleanEpisodeTitle strips a leading "S1.E5 ∙ " marker when the title
// selector captured the whole heading.
func cleanEpisodeTitle(s string) string {
	if idx := strings.IndexRune(s, '∙'); idx >= 0 {
		s = s[idx+len("∙"):]
	}
	return strings.TrimSpace(s)
}
