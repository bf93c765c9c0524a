// Package httpapi is the shared outbound HTTP layer for the upstream
// API clients. Every tool invocation maps to exactly one request here;
// the response is classified purely by status code and carried around
// as a Result until a handler formats it into a user-facing string.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every upstream call. A hung upstream fails the
// tool instead of blocking the conversation turn forever.
const DefaultTimeout = 30 * time.Second

// Client issues requests against one upstream API.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option configures the client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured upstream root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one outbound call. Body, when non-nil, is JSON
// encoded. Query, when non-nil, is appended to the path.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   url.Values
	Body    any
}

// Result is the outcome of one upstream call. Classification is solely
// by status code equality to 200.
type Result struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the upstream answered 200.
func (r Result) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Success formats a 200 result, embedding the raw response body.
func (r Result) Success(label string) string {
	return fmt.Sprintf("%s successfully: %s", label, r.Body)
}

// Failure formats a non-200 result, embedding the status code and the
// error body.
func (r Result) Failure(action string) string {
	return fmt.Sprintf("Failed to %s. Status Code: %d. Error: %s", action, r.StatusCode, r.Body)
}

// Decode unmarshals the response body into v.
func (r Result) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Do issues the request. The returned error covers transport failures
// only; any HTTP response, whatever the status, is a Result.
func (c *Client) Do(ctx context.Context, req Request) (Result, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return Result{}, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("calling %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading response from %s: %w", req.Path, err)
	}

	return Result{StatusCode: resp.StatusCode, Body: respBody}, nil
}
