package httpclient_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikt-no/authority-registry-api/internal/httpclient"
)

// newTestServer creates a new test server with keep-alives disabled.
// This prevents flaky tests when running in parallel, as closing a server
// with keep-alives enabled can affect other tests sharing the HTTP transport.
func newTestServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	return server
}

func TestNewDefaultClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
	}{
		{
			name:    "create client with custom timeout",
			timeout: 5 * time.Second,
		},
		{
			name:    "create client with zero timeout uses default",
			timeout: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := httpclient.NewDefaultClient(tt.timeout)

			require.NotNil(t, client, "client should not be nil")
		})
	}
}

func TestDefaultClient_Do_StatusAndBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		statusCode   int
		responseBody string
	}{
		{
			name:         "200 with JSON body",
			statusCode:   http.StatusOK,
			responseBody: `{"systemControlNumber": "42"}`,
		},
		{
			name:         "201 with body",
			statusCode:   http.StatusCreated,
			responseBody: `{"systemControlNumber": "43"}`,
		},
		{
			name:         "204 without body",
			statusCode:   http.StatusNoContent,
			responseBody: "",
		},
		{
			name:         "404 is returned, not raised",
			statusCode:   http.StatusNotFound,
			responseBody: "Not Found",
		},
		{
			name:         "500 is returned, not raised",
			statusCode:   http.StatusInternalServerError,
			responseBody: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockServer := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer mockServer.Close()

			client := httpclient.NewDefaultClient(30 * time.Second)

			resp, err := client.Do(context.Background(), &httpclient.Request{
				Method: http.MethodGet,
				URL:    mockServer.URL,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.statusCode, resp.StatusCode)
			assert.Equal(t, tt.responseBody, string(resp.Body))
		})
	}
}

func TestDefaultClient_Do_Headers(t *testing.T) {
	t.Parallel()

	t.Run("should send default, client and request headers", func(t *testing.T) {
		t.Parallel()

		var receivedHeaders http.Header
		var receivedMethod string
		var receivedBody string

		mockServer := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedHeaders = r.Header.Clone()
			receivedMethod = r.Method
			data, _ := io.ReadAll(r.Body)
			receivedBody = string(data)
			w.WriteHeader(http.StatusOK)
		}))
		defer mockServer.Close()

		client := httpclient.NewDefaultClient(30*time.Second, httpclient.WithHeader("apikey", "secret"))

		_, err := client.Do(context.Background(), &httpclient.Request{
			Method: http.MethodPost,
			URL:    mockServer.URL,
			Body:   []byte(`{"a":"b"}`),
			Header: http.Header{"Content-Type": []string{"application/json"}},
		})

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, receivedMethod)
		assert.Equal(t, `{"a":"b"}`, receivedBody)
		assert.Equal(t, "authority-registry-api/1.0", receivedHeaders.Get("User-Agent"))
		assert.Equal(t, "application/json", receivedHeaders.Get("Accept"))
		assert.Equal(t, "application/json", receivedHeaders.Get("Content-Type"))
		assert.Equal(t, "secret", receivedHeaders.Get("apikey"))
		assert.NotEmpty(t, receivedHeaders.Get(httpclient.RequestIDHeader))
	})

	t.Run("should forward the inbound request id", func(t *testing.T) {
		t.Parallel()

		var receivedID string

		mockServer := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedID = r.Header.Get(httpclient.RequestIDHeader)
			w.WriteHeader(http.StatusOK)
		}))
		defer mockServer.Close()

		client := httpclient.NewDefaultClient(30 * time.Second)
		ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")

		_, err := client.Do(ctx, &httpclient.Request{Method: http.MethodGet, URL: mockServer.URL})

		require.NoError(t, err)
		assert.Equal(t, "req-123", receivedID)
	})
}

func TestDefaultClient_Do_NetworkErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		url           string
		errorContains string
	}{
		{
			name:          "invalid URL scheme",
			url:           "://invalid-url",
			errorContains: "failed to create request",
		},
		{
			name:          "unreachable host",
			url:           "http://invalid-host-does-not-exist.local:9999",
			errorContains: "failed to execute request",
		},
		{
			name:          "empty URL",
			url:           "",
			errorContains: "failed to execute request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := httpclient.NewDefaultClient(30 * time.Second)

			_, err := client.Do(context.Background(), &httpclient.Request{Method: http.MethodGet, URL: tt.url})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestDefaultClient_Do_Timeout(t *testing.T) {
	t.Parallel()

	t.Run("should fail when the client timeout elapses", func(t *testing.T) {
		t.Parallel()

		mockServer := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(500 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer mockServer.Close()

		client := httpclient.NewDefaultClient(50 * time.Millisecond)

		_, err := client.Do(context.Background(), &httpclient.Request{Method: http.MethodGet, URL: mockServer.URL})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute request")
	})

	t.Run("should respect context cancellation", func(t *testing.T) {
		t.Parallel()

		mockServer := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(500 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer mockServer.Close()

		client := httpclient.NewDefaultClient(30 * time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := client.Do(ctx, &httpclient.Request{Method: http.MethodGet, URL: mockServer.URL})

		require.Error(t, err)
	})
}

func TestDefaultClient_Do_SizeLimitExceeded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		handler       http.HandlerFunc
		errorContains string
	}{
		{
			name: "reject response exceeding limit via Content-Length",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Length", fmt.Sprintf("%d", httpclient.MaxResponseSize+1))
				w.WriteHeader(http.StatusOK)
			},
			errorContains: "exceeds maximum allowed size",
		},
		{
			name: "reject response exceeding limit by actual content",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				chunk := make([]byte, 1024*1024)
				for i := 0; i < 11; i++ {
					_, _ = w.Write(chunk)
				}
			},
			errorContains: "exceeds maximum allowed size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockServer := newTestServer(tt.handler)
			defer mockServer.Close()

			client := httpclient.NewDefaultClient(30 * time.Second)

			_, err := client.Do(context.Background(), &httpclient.Request{Method: http.MethodGet, URL: mockServer.URL})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}
