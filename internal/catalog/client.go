package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AppsFetcher performs one round trip for the app list.
// This interface is implemented by *Client and can be used for testing.
type AppsFetcher interface {
	FetchApps(ctx context.Context) ([]Record, error)
}

// Ensure Client implements AppsFetcher at compile time.
var _ AppsFetcher = (*Client)(nil)

// Client talks to the catalog HTTP endpoint.
type Client struct {
	baseURL   *url.URL
	endpoint  string
	http      *http.Client
	userAgent string
}

const (
	DefaultEndpoint       = "apps.json"
	DefaultRequestTimeout = 10 * time.Second
	defaultUserAgent      = "appdeck/0.1"
)

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the path fetched relative to the base URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithTimeout sets the per-request timeout. Zero leaves the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the catalog rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:  base,
		endpoint: DefaultEndpoint,
		http: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized catalog root, always ending in a slash.
func (c *Client) BaseURL() string {
	if c == nil {
		return DefaultBaseURL
	}
	return c.baseURL.String()
}

// FetchApps retrieves and decodes the app list.
func (c *Client) FetchApps(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload appsResponse
	if err := c.get(ctx, c.endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Apps == nil {
		return []Record{}, nil
	}
	return payload.Apps, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return &Error{Kind: KindTransport, Op: "parse endpoint", Err: err}
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &Error{Kind: KindTransport, Op: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: KindTransport, Op: "read response", Err: &StatusError{Path: path, StatusCode: resp.StatusCode}}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &Error{Kind: KindDecode, Op: "decode response", Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
