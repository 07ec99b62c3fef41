package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"streamscout/internal/services"
)

// Title models an OMDb detail payload. OMDb reports success inside the body
// via Response ("True"/"False") rather than the HTTP status, and uses the
// literal "N/A" for absent fields.
type Title struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Runtime  string `json:"Runtime"`
	ImdbID   string `json:"imdbID"`
	Type     string `json:"Type"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// YearInt extracts the leading calendar year. OMDb reports series years as
// ranges ("2005–2013"), so only the first four digits are read.
func (t Title) YearInt() int {
	s := strings.TrimSpace(t.Year)
	if len(s) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return year
}

// RuntimeMinutes parses the "148 min" runtime form. "N/A" and unparseable
// values yield zero.
func (t Title) RuntimeMinutes() int {
	s := strings.TrimSpace(t.Runtime)
	if s == "" || s == "N/A" {
		return 0
	}
	fields := strings.Fields(s)
	minutes, err := strconv.Atoi(fields[0])
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ByIMDBID fetches title details for an IMDb id.
func (c *Client) ByIMDBID(ctx context.Context, imdbID string) (*Title, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	params := url.Values{}
	params.Set("i", imdbID)
	return c.get(ctx, params)
}

// Episode fetches a single episode's details by series IMDb id, season, and
// episode number.
func (c *Client) Episode(ctx context.Context, imdbID string, season, episode int) (*Title, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	if season < 0 || episode < 1 {
		return nil, fmt.Errorf("invalid season/episode %d/%d", season, episode)
	}
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("Season", strconv.Itoa(season))
	params.Set("Episode", strconv.Itoa(episode))
	return c.get(ctx, params)
}

func (c *Client) get(ctx context.Context, params url.Values) (*Title, error) {
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "omdb", "get", "parse url", err)
	}
	params.Set("apikey", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "omdb", "get", "build request", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "omdb", "get", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		marker := services.ErrConfiguration
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			marker = services.ErrTransient
		}
		return nil, services.Wrap(marker, "omdb", "get", fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	var payload Title
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrParse, "omdb", "get", "decode response", err)
	}
	if !strings.EqualFold(payload.Response, "True") {
		return nil, services.Wrap(services.ErrNotFound, "omdb", "get", payload.Error, nil)
	}
	return &payload, nil
}
