// Package ledger implements the HTTP client of the remote ledger API,
// the authoritative side of the system. The client never retries and
// never interprets remote failures: they surface unchanged as *APIError
// for the presentation layer to display.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"contas/internal/cache"
	"contas/internal/log"
)

const requestIDHeader = "X-Request-Id"

// TokenSource supplies the bearer token for each request. An empty token
// with ErrNotLoggedIn-style errors is fine: requests simply go out
// unauthenticated and the server answers 401.
type TokenSource interface {
	Load() (string, error)
}

// APIError is a remote failure, propagated unchanged. The request id, when
// the server echoed one, links the failure to the server's logs.
type APIError struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ledger: status %d", e.StatusCode)
	}
	return fmt.Sprintf("ledger: %s (status %d)", e.Detail, e.StatusCode)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	cache   *cache.Query
	logger  *log.Logger

	lastRequestID atomic.Value // string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithCache(q *cache.Query) Option {
	return func(c *Client) { c.cache = q }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		cache:   cache.New(0),
		logger:  log.New(log.DefaultConfig()).WithComponent(log.ComponentLedger),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LastRequestID returns the x-request-id of the most recent response,
// success or failure. Empty until the server echoes one.
func (c *Client) LastRequestID() string {
	if v, ok := c.lastRequestID.Load().(string); ok {
		return v
	}
	return ""
}

type errorBody struct {
	Detail string `json:"detail"`
}

// do performs one request. body is marshaled as JSON when non-nil; out is
// decoded into when non-nil and the response succeeded.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.tokens != nil {
		if token, err := c.tokens.Load(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if rid := resp.Header.Get(requestIDHeader); rid != "" {
		c.lastRequestID.Store(rid)
	}
	c.logger.Debug("ledger request",
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds(),
		log.FieldRequestID, resp.Header.Get(requestIDHeader))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			RequestID:  resp.Header.Get(requestIDHeader),
		}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Detail = eb.Detail
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}
