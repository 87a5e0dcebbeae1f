// Package remote talks to the placeholder posts API that quotes are synced with.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikbrunner/quotes/internal/model"
)

const (
	// DefaultURL is the public placeholder endpoint used for reads and writes.
	DefaultURL = "https://jsonplaceholder.typicode.com/posts"

	userAgentProduct    = "quotes"
	userAgentVersion    = "1.0"
	defaultHTTPTimeout  = 30 * time.Second
	maxResponseBodySize = 4 << 20 // 4 MiB guard
)

// Client fetches remote items and pushes quotes to a single endpoint URL.
type Client struct {
	url       string
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

// Option mutates the client during construction.
type Option func(*Client)

// WithTimeout replaces the default client with one using the given timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger used for push responses and debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a client for url. An empty url selects DefaultURL.
func NewClient(url string, opts ...Option) *Client {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultURL
	}
	c := &Client{
		url:       url,
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		userAgent: fmt.Sprintf("%s/%s (Go%s)", userAgentProduct, userAgentVersion, strings.TrimPrefix(runtime.Version(), "go")),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string {
	return c.url
}

// Fetch reads the remote collection. The response must be a JSON array of
// objects; only the title of each object is used by callers.
func (c *Client) Fetch(ctx context.Context) ([]model.RemoteItem, error) {
	raw, _, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var items []model.RemoteItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &model.ParseError{Source: "remote", Err: err}
	}
	if items == nil {
		items = []model.RemoteItem{}
	}
	return items, nil
}

// PushResult holds the endpoint's reply to a push.
type PushResult struct {
	StatusCode int
	Body       []byte
}

// Push sends a single quote to the endpoint. The reply is logged and returned
// as-is; it is never merged back into the local collection.
func (c *Client) Push(ctx context.Context, q model.Quote) (*PushResult, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode quote: %w", err)
	}

	raw, status, err := c.do(ctx, http.MethodPost, body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("push response", zap.Int("status", status), zap.ByteString("body", raw))
	return &PushResult{StatusCode: status, Body: raw}, nil
}

// do executes a request against the endpoint and returns the body of a 2xx
// response. Anything else is a *TransportError.
func (c *Client) do(ctx context.Context, method string, payload []byte) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	if ua := strings.TrimSpace(c.userAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Method: method, URL: c.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Method: method, URL: c.url, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &TransportError{
			Method:     method,
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}

	return raw, resp.StatusCode, nil
}
