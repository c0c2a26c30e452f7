package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// newTestTracerProvider creates a tracer provider with an in-memory exporter,
// shut down when the test completes.
func newTestTracerProvider(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, tp
}

func tracedRouter(tp *sdktrace.TracerProvider, status int) http.Handler {
	r := chi.NewRouter()
	r.Use(TracingMiddleware(tp))
	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
	r.Get("/persons/{scn}", handler)
	r.Get("/health", handler)
	r.Get("/version", handler)
	r.Get("/metrics", handler)
	return r
}

func TestTracingMiddleware_NilProvider(t *testing.T) {
	t.Parallel()

	middleware := TracingMiddleware(nil)
	require.NotNil(t, middleware)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Custom-Header", "test-value")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("response body"))
	})

	req := httptest.NewRequest(http.MethodPost, "/persons", nil)
	rr := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "test-value", rr.Header().Get("X-Custom-Header"))
	assert.Equal(t, "response body", rr.Body.String())
}

func TestTracingMiddleware_SpanAttributes(t *testing.T) {
	t.Parallel()

	exporter, tp := newTestTracerProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/persons/12345", nil)
	req.Header.Set("User-Agent", "test-agent/1.0")
	rr := httptest.NewRecorder()
	tracedRouter(tp, http.StatusOK).ServeHTTP(rr, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]

	assert.Equal(t, "GET /persons/{scn}", span.Name)

	attrs := make(map[string]any)
	for _, attr := range span.Attributes {
		attrs[string(attr.Key)] = attr.Value.AsInterface()
	}
	assert.Equal(t, http.MethodGet, attrs[string(semconv.HTTPRequestMethodKey)])
	assert.Equal(t, "/persons/12345", attrs[string(semconv.URLPathKey)])
	assert.Equal(t, "test-agent/1.0", attrs[string(semconv.UserAgentOriginalKey)])
	assert.Equal(t, int64(http.StatusOK), attrs[string(semconv.HTTPResponseStatusCodeKey)])
	assert.Equal(t, "/persons/{scn}", attrs[string(semconv.HTTPRouteKey)])
}

func TestTracingMiddleware_StatusCodeRecording(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantStatus codes.Code
		wantDesc   string
	}{
		{name: "2xx sets Ok", statusCode: http.StatusOK, wantStatus: codes.Ok},
		{name: "4xx stays unset", statusCode: http.StatusConflict, wantStatus: codes.Unset},
		{name: "502 sets Error", statusCode: http.StatusBadGateway, wantStatus: codes.Error, wantDesc: "Bad Gateway"},
		{name: "500 sets Error", statusCode: http.StatusInternalServerError, wantStatus: codes.Error, wantDesc: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exporter, tp := newTestTracerProvider(t)

			req := httptest.NewRequest(http.MethodGet, "/persons/1", nil)
			rr := httptest.NewRecorder()
			tracedRouter(tp, tt.statusCode).ServeHTTP(rr, req)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status.Code)
			assert.Equal(t, tt.wantDesc, spans[0].Status.Description)
		})
	}
}

func TestTracingMiddleware_TraceContextExtraction(t *testing.T) {
	// Not parallel: sets the global propagator.
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator()) })

	exporter, tp := newTestTracerProvider(t)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/persons/1", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	rr := httptest.NewRecorder()
	tracedRouter(tp, http.StatusOK).ServeHTTP(rr, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, traceID, spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
}

func TestTracingMiddleware_SkipsLowValueEndpoints(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/health", "/version", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			exporter, tp := newTestTracerProvider(t)

			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()
			tracedRouter(tp, http.StatusOK).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Empty(t, exporter.GetSpans())
		})
	}
}

func TestTracingMiddleware_UnknownRoute(t *testing.T) {
	t.Parallel()

	exporter, tp := newTestTracerProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	rr := httptest.NewRecorder()
	tracedRouter(tp, http.StatusOK).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET "+unknownRoute, spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestTruncateUserAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "short user agent unchanged", input: "curl/8.0", expected: "curl/8.0"},
		{name: "exactly max length unchanged", input: strings.Repeat("a", MaxUserAgentLength), expected: strings.Repeat("a", MaxUserAgentLength)},
		{name: "exceeds max length truncated", input: strings.Repeat("a", MaxUserAgentLength+100), expected: strings.Repeat("a", MaxUserAgentLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, truncateUserAgent(tt.input))
		})
	}
}
