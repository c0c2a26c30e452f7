// Package otel provides OpenTelemetry instrumentation utilities for the authority API.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by the service and registry client spans.
const (
	AttrOperation           = attribute.Key("authority.operation")
	AttrSystemControlNumber = attribute.Key("authority.system_control_number")
	AttrQualifier           = attribute.Key("authority.qualifier")
	AttrNamespace           = attribute.Key("identifier.namespace")
	AttrResultCount         = attribute.Key("result.count")
	AttrRegistryStatus      = attribute.Key("registry.status_code")
)

// StartSpan starts a new span if the tracer is non-nil, otherwise returns the span already in ctx.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// StartClientSpan starts a client-kind span for a call to the registry.
func StartClientSpan(
	ctx context.Context,
	tracer trace.Tracer,
	operation string,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	attrs = append(attrs, AttrOperation.String(operation))
	return StartSpan(ctx, tracer, "bare."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records an error on a span and sets the span status to error.
// It safely handles nil spans and nil errors.
// The status description stays generic so registry response bodies, which may hold
// personal data, only show up in the exception event.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
