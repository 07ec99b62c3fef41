package tmdb

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

// Result is a single TMDB title record. Search listings and detail fetches
// share the shape; detail fetches additionally carry runtime and external
// id cross-references.
type Result struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Name           string       `json:"name"`
	ReleaseDate    string       `json:"release_date"`
	FirstAirDate   string       `json:"first_air_date"`
	Runtime        int          `json:"runtime"`
	EpisodeRunTime []int        `json:"episode_run_time"`
	ExternalIDs    *ExternalIDs `json:"external_ids"`
}

// ExternalIDs carries TMDB's cross-references to other providers.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// FindResponse models the /find/{external_id} payload.
type FindResponse struct {
	MovieResults []Result `json:"movie_results"`
	TVResults    []Result `json:"tv_results"`
}

// Episode describes a single TMDB episode entry.
type Episode struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Runtime       int    `json:"runtime"`
	AirDate       string `json:"air_date"`
}

// DisplayTitle returns whichever of title/name the record populated.
func (r Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Date returns whichever release date field the record populated.
func (r Result) Date() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// RuntimeMinutes flattens movie runtime and the TV episode_run_time list
// into a single minutes value (first entry wins, matching TMDB ordering).
func (r Result) RuntimeMinutes() int {
	if r.Runtime > 0 {
		return r.Runtime
	}
	if len(r.EpisodeRunTime) > 0 {
		return r.EpisodeRunTime[0]
	}
	return 0
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
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

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FindByIMDBID resolves an IMDb id into TMDB-native records via the
// /find endpoint.
func (c *Client) FindByIMDBID(ctx context.Context, imdbID string) (*FindResponse, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	params := url.Values{}
	params.Set("external_source", "imdb_id")

	var payload FindResponse
	if err := c.get(ctx, "/find/"+url.PathEscape(imdbID), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MovieDetails fetches full movie details, including external ids, by
// TMDB-native id.
func (c *Client) MovieDetails(ctx context.Context, tmdbID string) (*Result, error) {
	return c.details(ctx, "movie", tmdbID)
}

// TVDetails fetches full TV show details, including external ids, by
// TMDB-native id.
func (c *Client) TVDetails(ctx context.Context, tmdbID string) (*Result, error) {
	return c.details(ctx, "tv", tmdbID)
}

func (c *Client) details(ctx context.Context, mediaType, tmdbID string) (*Result, error) {
	tmdbID = strings.TrimSpace(tmdbID)
	if _, err := strconv.ParseInt(tmdbID, 10, 64); err != nil {
		return nil, fmt.Errorf("tmdb id %q is not numeric", tmdbID)
	}
	params := url.Values{}
	params.Set("append_to_response", "external_ids")

	var payload Result
	if err := c.get(ctx, "/"+mediaType+"/"+tmdbID, params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// EpisodeDetails fetches a single episode's metadata by show id, season,
// and episode number.
func (c *Client) EpisodeDetails(ctx context.Context, tmdbID string, season, episode int) (*Episode, error) {
	tmdbID = strings.TrimSpace(tmdbID)
	if _, err := strconv.ParseInt(tmdbID, 10, 64); err != nil {
		return nil, fmt.Errorf("tmdb id %q is not numeric", tmdbID)
	}
	if season < 0 || episode < 1 {
		return nil, fmt.Errorf("invalid season/episode %d/%d", season, episode)
	}

	var payload Episode
	path := fmt.Sprintf("/tv/%s/season/%d/episode/%d", tmdbID, season, episode)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "tmdb", "get", "parse url", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "tmdb", "get", "build request", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrTransient, "tmdb", "get", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, "tmdb", "get", fmt.Sprintf("status 404 (latency=%v)", latency), nil)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return services.Wrap(services.ErrTransient, "tmdb", "get", fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	default:
		return services.Wrap(services.ErrConfiguration, "tmdb", "get", fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrParse, "tmdb", "get", "decode response", err)
	}
	return nil
}
