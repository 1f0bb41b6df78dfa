package codacy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Codacy API v3 endpoint.
const DefaultBaseURL = "https://api.codacy.com/api/v3"

// Config configures the API client. The token is threaded in explicitly so
// tests can run against a fake server with a fake credential.
type Config struct {
	// BaseURL of the API, without a trailing slash.
	BaseURL string

	// Token is sent in the api-token header on every request.
	Token string

	// Timeout for individual requests (default: 30s).
	Timeout time.Duration

	// MaxRetries for transient failures (default: 3).
	MaxRetries int

	// RateLimit requests per second (default: 10) and burst (default: 5).
	RateLimit float64
	RateBurst int

	// Transport allows injecting a custom HTTP transport (for tests).
	Transport http.RoundTripper
}

// Client issues authenticated, rate-limited GET requests against the
// Codacy API and decodes JSON pages. It keeps no state between calls.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an API client. Defaults are applied for zero fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10.0
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 5
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// Get performs an authenticated GET on path and decodes the JSON body into
// out. Transient failures are retried with exponential backoff; all other
// failures return immediately as an *APIError.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if c.cfg.Token == "" {
		return &APIError{Kind: KindAuth, Path: path, Message: "api token is not set"}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Kind: KindTransient, Path: path, Message: err.Error(), Err: err}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return &APIError{Kind: KindTransient, Path: path, Message: ctx.Err().Error(), Err: ctx.Err()}
			case <-time.After(backoff):
			}
		}
		err := c.getOnce(ctx, path, query, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsTransient(err) {
			return err
		}
	}
	return lastErr
}

func (c *Client) getOnce(ctx context.Context, path string, query url.Values, out any) error {
	full := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return &APIError{Kind: KindProtocol, Path: path, Message: "build request: " + err.Error(), Err: err}
	}
	// Codacy authenticates with a bare api-token header, not a Bearer line.
	req.Header.Set("api-token", c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return &APIError{Kind: KindTransient, Path: path, Message: "request canceled", Err: err}
		}
		return &APIError{Kind: KindTransient, Path: path, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindTransient, Path: path, StatusCode: resp.StatusCode, Message: "read body: " + err.Error(), Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &APIError{Kind: KindAuth, Path: path, StatusCode: resp.StatusCode, Message: "token rejected"}
	case resp.StatusCode == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Path: path, StatusCode: resp.StatusCode, Message: "resource does not exist"}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &APIError{Kind: KindTransient, Path: path, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	case resp.StatusCode >= 400:
		return &APIError{Kind: KindProtocol, Path: path, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Kind: KindProtocol, Path: path, StatusCode: resp.StatusCode, Message: "decode response: " + err.Error(), Err: err}
	}
	return nil
}
