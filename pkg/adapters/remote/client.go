package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Client is the shared outbound HTTP client.
// It carries no per-call state and is safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	hooks     domain.Hooks
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header of outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying *http.Client (e.g. for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHooks registers observability hooks; only OnRemote is used.
func WithHooks(h domain.Hooks) Option {
	return func(c *Client) {
		c.hooks = h
	}
}

// NewClient creates a Client. Redirects are followed by net/http's default policy.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: "typo3docs",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchJSON issues a single GET and decodes the body as a JSON object.
// Any failure is reported as domain.ErrRemoteUnavailable; callers are not expected
// to tell the causes apart.
func (c *Client) FetchJSON(ctx context.Context, rawURL string) (map[string]any, error) {
	start := time.Now()
	payload, err := c.fetch(ctx, rawURL)
	if err != nil {
		c.logger.Debug("Remote call failed", "url", rawURL, "error", err)
		err = fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	if c.hooks.OnRemote != nil {
		c.hooks.OnRemote(ctx, &domain.RemoteEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRemote},
			URL:       rawURL,
			Err:       err,
			Duration:  time.Since(start),
		})
	}
	return payload, err
}

func (c *Client) fetch(ctx context.Context, rawURL string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("decode body: empty JSON object")
	}
	return payload, nil
}
