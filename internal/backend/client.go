// Package backend is the HTTP+JSON client for the store backend that owns
// products, categories and transactions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sarisari-pos/internal/metrics"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrUnavailable matches any failure to reach the backend, including
// timeouts.
var ErrUnavailable = errors.New("backend unavailable")

// UnavailableError is returned when a request never produced a response.
type UnavailableError struct {
	Endpoint string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: backend unavailable: %v", e.Endpoint, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// APIError is a non-2xx response.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Endpoint, e.Status, e.Message)
}

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token(ctx context.Context) string
}

type Log interface {
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        Log
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l Log) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, "/health", nil, "", nil)
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, out interface{}) error {
	return c.do(ctx, endpoint, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, endpoint, method, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "%s: encode request", endpoint)
	}
	return c.do(ctx, endpoint, method, path, bytes.NewReader(payload), "application/json", out)
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body io.Reader, contentType string, out interface{}) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.BackendRequests.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		outcome = "error"
		return errors.Wrapf(err, "%s: build request", endpoint)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "unavailable"
		return &UnavailableError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_" + fmt.Sprint(resp.StatusCode)
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = "decode_error"
		return errors.Wrapf(err, "%s: decode response", endpoint)
	}
	return nil
}

// errorMessage pulls "error" or "message" out of a JSON error body, falling
// back to the raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
