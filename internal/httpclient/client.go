// Package httpclient provides HTTP client functionality for registry API operations
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize is the maximum allowed response size (10MB)
	MaxResponseSize = 10 * 1024 * 1024

	// UserAgent is the user agent string for HTTP requests
	UserAgent = "authority-registry-api/1.0"

	// RequestIDHeader carries the correlation id of the inbound request to the registry
	RequestIDHeader = "X-Request-Id"
)

// Client is an interface for HTTP operations
type Client interface {
	// Do performs the request and returns the status and body. Non-2xx statuses are
	// not errors; interpreting them is left to the caller.
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request describes an outbound HTTP request
type Request struct {
	Method string
	URL    string
	Body   []byte
	Header http.Header
}

// Response holds the status code and the fully read body of a response
type Response struct {
	StatusCode int
	Body       []byte
}

// Option configures a DefaultClient
type Option func(*DefaultClient)

// WithHeader sets a header sent on every request
func WithHeader(key, value string) Option {
	return func(c *DefaultClient) {
		c.headers.Set(key, value)
	}
}

// WithTransport replaces the underlying round tripper. It is still wrapped for tracing.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *DefaultClient) {
		c.transport = rt
	}
}

// DefaultClient is the default HTTP client implementation
type DefaultClient struct {
	client    *http.Client
	transport http.RoundTripper
	headers   http.Header
	timeout   time.Duration
}

// NewDefaultClient creates a new default HTTP client with the specified timeout
// If timeout is 0, uses DefaultTimeout
func NewDefaultClient(timeout time.Duration, opts ...Option) Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	c := &DefaultClient{
		transport: http.DefaultTransport,
		headers:   http.Header{},
		timeout:   timeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(c.transport),
	}
	return c
}

// Do performs an HTTP request
func (c *DefaultClient) Do(ctx context.Context, r *Request) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	for key, values := range r.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set(RequestIDHeader, requestID(ctx))

	// Execute request
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Check Content-Length header if available
	if resp.ContentLength > MaxResponseSize {
		return nil, fmt.Errorf("response size %d bytes exceeds maximum allowed size of %d bytes (%.2f MB)",
			resp.ContentLength, MaxResponseSize, float64(MaxResponseSize)/(1024*1024))
	}

	// +1 to detect if limit exceeded
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("response size exceeds maximum allowed size of %d bytes (%.2f MB)",
			MaxResponseSize, float64(MaxResponseSize)/(1024*1024))
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// requestID reuses the inbound request id when there is one so registry logs can be correlated
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
