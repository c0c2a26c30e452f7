package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewTracerProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []TracerProviderOption
		expectNoOp bool
	}{
		{
			name:       "no config yields no-op provider",
			expectNoOp: true,
		},
		{
			name:       "disabled tracing yields no-op provider",
			opts:       []TracerProviderOption{WithTracingConfig(&TracingConfig{Enabled: false})},
			expectNoOp: true,
		},
		{
			name: "enabled tracing with OTLP exporter",
			opts: []TracerProviderOption{
				WithTracingConfig(&TracingConfig{Enabled: true, Sampling: 0.5}),
				WithTracerInsecure(true),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			tp, err := NewTracerProvider(ctx, tt.opts...)
			require.NoError(t, err)
			require.NotNil(t, tp)

			if tt.expectNoOp {
				_, ok := tp.(noop.TracerProvider)
				assert.True(t, ok, "expected no-op tracer provider")
				return
			}

			sdkTP, ok := tp.(*sdktrace.TracerProvider)
			require.True(t, ok, "expected SDK tracer provider")
			_ = sdkTP.Shutdown(ctx)
		})
	}
}

func TestNewTracerProvider_CustomExporter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewTracerProvider(ctx,
		WithTracingConfig(&TracingConfig{Enabled: true, Sampling: 1.0}),
		WithSpanExporter(exporter),
	)
	require.NoError(t, err)

	sdkTP, ok := tp.(*sdktrace.TracerProvider)
	require.True(t, ok)

	_, span := sdkTP.Tracer("test").Start(ctx, "lookup")
	span.End()
	require.NoError(t, sdkTP.ForceFlush(ctx))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "lookup", spans[0].Name)

	var serviceName string
	for _, attr := range spans[0].Resource.Attributes() {
		if attr.Key == "service.name" {
			serviceName = attr.Value.AsString()
		}
	}
	assert.Equal(t, DefaultServiceName, serviceName)

	require.NoError(t, sdkTP.Shutdown(ctx))
}

func TestTracerProviderOptions(t *testing.T) {
	t.Parallel()

	tracingConfig := &TracingConfig{Enabled: true}
	exporter := tracetest.NewInMemoryExporter()

	cfg := &tracerProviderConfig{}
	for _, opt := range []TracerProviderOption{
		WithTracerServiceName("authority-api-test"),
		WithTracerServiceVersion("1.2.3"),
		WithTracingConfig(tracingConfig),
		WithTracerEndpoint("collector:4318"),
		WithTracerInsecure(true),
		WithSpanExporter(exporter),
	} {
		opt(cfg)
	}

	assert.Equal(t, "authority-api-test", cfg.serviceName)
	assert.Equal(t, "1.2.3", cfg.serviceVersion)
	assert.Same(t, tracingConfig, cfg.tracingConfig)
	assert.Equal(t, "collector:4318", cfg.endpoint)
	assert.True(t, cfg.insecure)
	assert.Equal(t, sdktrace.SpanExporter(exporter), cfg.exporter)
}
