package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"streamscout/internal/services"
)

const maxBodyBytes = 4 << 20

// Options describes outbound HTTP client construction parameters.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	ProxyURL  string
}

// Client issues outbound GET requests with a fixed timeout, a descriptive
// user agent, and an optional proxy. One Client is shared by every component
// of a process; per-request state lives in the request context.
type Client struct {
	http      *http.Client
	userAgent string
}

// New constructs a Client. An empty proxy URL means direct connections.
func New(opts Options) (*Client, error) {
	transport := &http.Transport{
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
	}
	if proxy := strings.TrimSpace(opts.ProxyURL); proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "httpx", "new", "invalid proxy url", err)
		}
		transport.Proxy = http.ProxyURL(u)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent: strings.TrimSpace(opts.UserAgent),
	}, nil
}

// Get fetches rawURL and returns the response body. Non-2xx statuses are
// errors: 5xx and 429 are tagged transient so retry wrappers take another
// attempt, other statuses are definitive.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "httpx", "get", "build request", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if ctx.Err() != nil {
			return nil, services.Wrap(services.ErrTimeout, "httpx", "get", fmt.Sprintf("request canceled (latency=%v)", latency), err)
		}
		return nil, services.Wrap(services.ErrTransient, "httpx", "get", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		marker := services.ErrNotFound
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			marker = services.ErrTransient
		}
		return nil, services.Wrap(marker, "httpx", "get", fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "httpx", "get", "read body", err)
	}
	return body, nil
}

// Underlying exposes the wrapped *http.Client for API clients that decode
// JSON responses themselves.
func (c *Client) Underlying() *http.Client {
	return c.http
}
