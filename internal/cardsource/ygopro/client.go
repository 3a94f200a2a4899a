// Package ygopro is a rate-limited client for the public YGOPRODeck card
// database API.
package ygopro

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dueldisk/dueldisk-server/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://db.ygoprodeck.com/api/v7"

	// The public API asks clients to stay under 20 requests per second;
	// we stay well below that.
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited card database client.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used for tests and mirrors.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithRate overrides the request rate limit.
func WithRate(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter.Stop()
		c.limiter = ratelimit.New(rps, burst)
	}
}

// New creates a new card database client.
func New(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: DefaultBaseURL,
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest executes a GET against the API with rate limiting. All endpoints
// share one limiter key since they share one upstream host.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fullURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "DuelDisk/1.0")

	c.logger.Debug("card database request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusBadRequest:
		// The API reports "no match" as a 400 with an error body.
		return body, ErrNotFound
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
