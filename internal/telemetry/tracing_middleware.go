package telemetry

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the name used for the HTTP tracer
	TracerName = "github.com/sikt-no/authority-registry-api/http"

	// MaxUserAgentLength caps the user agent recorded on spans
	MaxUserAgentLength = 256
)

// untracedPaths are probed often and carry no useful trace
var untracedPaths = map[string]struct{}{
	"/health":  {},
	"/version": {},
	"/metrics": {},
}

// TracingMiddleware starts a server span per request, continuing any W3C trace context
// found in the request headers. A nil provider passes requests through.
func TracingMiddleware(provider trace.TracerProvider) func(http.Handler) http.Handler {
	if provider == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	tracer := provider.Tracer(TracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := untracedPaths[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			// The global propagator is read per request since it is set after startup
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
					semconv.UserAgentOriginal(truncateUserAgent(r.UserAgent())),
				),
			)
			defer span.End()

			req := r.WithContext(ctx)
			next.ServeHTTP(ww, req)

			// chi fills the route pattern during routing, so it is read afterwards
			route := routePattern(req)
			span.SetName(r.Method + " " + route)

			status := ww.Status()
			span.SetAttributes(
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCode(status),
			)

			// 4xx leaves the status unset: the server behaved correctly
			switch {
			case status >= http.StatusInternalServerError:
				span.SetStatus(codes.Error, http.StatusText(status))
			case status < http.StatusBadRequest:
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}

func truncateUserAgent(ua string) string {
	if len(ua) > MaxUserAgentLength {
		return ua[:MaxUserAgentLength]
	}
	return ua
}
