// Package telemetry provides OpenTelemetry instrumentation for the authority API.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// RegistryMetricsMeterName is the name used for the registry client meter
	RegistryMetricsMeterName = "github.com/sikt-no/authority-registry-api/registry"

	// OperationMetricsMeterName is the name used for the reconciliation operation meter
	OperationMetricsMeterName = "github.com/sikt-no/authority-registry-api/operations"
)

// RegistryMetrics holds the OpenTelemetry instruments for calls made to the registry
type RegistryMetrics struct {
	callDuration metric.Float64Histogram
}

// NewRegistryMetrics creates a new RegistryMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewRegistryMetrics(provider metric.MeterProvider) (*RegistryMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(RegistryMetricsMeterName)

	callDuration, err := meter.Float64Histogram(
		"authority_api_registry_call_duration_seconds",
		metric.WithDescription("Duration of calls to the authority registry in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15),
	)
	if err != nil {
		return nil, err
	}

	return &RegistryMetrics{
		callDuration: callDuration,
	}, nil
}

// RecordCall records the duration and outcome of a single registry call
func (m *RegistryMetrics) RecordCall(ctx context.Context, operation string, duration time.Duration, success bool) {
	if m == nil || m.callDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	}

	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// OperationMetrics counts reconciliation operations by outcome
type OperationMetrics struct {
	operationsTotal metric.Int64Counter
}

// NewOperationMetrics creates a new OperationMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewOperationMetrics(provider metric.MeterProvider) (*OperationMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(OperationMetricsMeterName)

	operationsTotal, err := meter.Int64Counter(
		"authority_api_operations_total",
		metric.WithDescription("Number of authority operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	return &OperationMetrics{
		operationsTotal: operationsTotal,
	}, nil
}

// RecordOperation counts one finished operation. outcome is one of the service outcome labels
// (success, invalid_input, duplicate_identifier, registry_rejected, communication_failure).
func (m *OperationMetrics) RecordOperation(ctx context.Context, operation, outcome string) {
	if m == nil || m.operationsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	}

	m.operationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
