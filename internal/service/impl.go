package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sikt-no/authority-registry-api/internal/authority"
	"github.com/sikt-no/authority-registry-api/internal/bare"
	"github.com/sikt-no/authority-registry-api/internal/otel"
	"github.com/sikt-no/authority-registry-api/internal/telemetry"
)

const (
	// ServiceTracerName is the name used for the authority service tracer
	ServiceTracerName = "github.com/sikt-no/authority-registry-api/service"

	// refetchFailedDetail is reported when the record cannot be read back after a mutation
	refetchFailedDetail = "communication failure while retrieving updated authority"
)

// Operation names used in spans and metrics
const (
	opGet    = "get"
	opSearch = "search"
	opCreate = "create"
	opAdd    = "add_identifier"
	opUpdate = "update_identifier"
	opDelete = "delete_identifier"
)

// Outcome labels for operation metrics
const (
	OutcomeSuccess              = "success"
	OutcomeInvalidInput         = "invalid_input"
	OutcomeDuplicateIdentifier  = "duplicate_identifier"
	OutcomeRegistryRejected     = "registry_rejected"
	OutcomeCommunicationFailure = "communication_failure"
	OutcomeError                = "error"
)

// options holds configuration options for the authority service
type options struct {
	tracer  trace.Tracer
	metrics *telemetry.OperationMetrics
}

// ServiceOption is a functional option for configuring the authority service
type ServiceOption func(*options) error

// WithTracerProvider traces every service operation
func WithTracerProvider(tp trace.TracerProvider) ServiceOption {
	return func(o *options) error {
		if tp != nil {
			o.tracer = tp.Tracer(ServiceTracerName)
		}
		return nil
	}
}

// WithOperationMetrics counts operations by outcome
func WithOperationMetrics(m *telemetry.OperationMetrics) ServiceOption {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

type authorityService struct {
	registry  bare.RegistryClient
	converter *authority.Converter
	tracer    trace.Tracer
	metrics   *telemetry.OperationMetrics
}

var _ AuthorityService = (*authorityService)(nil)

// NewAuthorityService creates the service on top of a registry client
func NewAuthorityService(
	registry bare.RegistryClient,
	converter *authority.Converter,
	opts ...ServiceOption,
) (AuthorityService, error) {
	if registry == nil {
		return nil, errors.New("registry client is required")
	}
	if converter == nil {
		return nil, errors.New("converter is required")
	}

	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return &authorityService{
		registry:  registry,
		converter: converter,
		tracer:    o.tracer,
		metrics:   o.metrics,
	}, nil
}

// GetAuthority implements AuthorityService.GetAuthority
func (s *authorityService) GetAuthority(ctx context.Context, scn string) (view *authority.View, err error) {
	ctx, finish := s.begin(ctx, opGet, otel.AttrSystemControlNumber.String(scn))
	defer func() { finish(err) }()

	if err := requireValue("system control number", scn); err != nil {
		return nil, err
	}

	record, err := s.registry.Lookup(ctx, scn)
	if err != nil {
		return nil, err
	}

	v := s.converter.ToView(record)
	return &v, nil
}

// SearchAuthorities implements AuthorityService.SearchAuthorities.
// Identifier searches only return records holding the exact identifier.
func (s *authorityService) SearchAuthorities(
	ctx context.Context,
	opts ...Option[SearchOptions],
) (views []authority.View, err error) {
	ctx, finish := s.begin(ctx, opSearch)
	defer func() { finish(err) }()

	searchOpts := &SearchOptions{}
	for _, opt := range opts {
		if err := opt(searchOpts); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	if err := searchOpts.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	query := searchOpts.Name
	if searchOpts.Qualifier != "" {
		query = searchOpts.Identifier
		trace.SpanFromContext(ctx).SetAttributes(otel.AttrQualifier.String(searchOpts.Qualifier.String()))
	}

	records, err := s.registry.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if searchOpts.Qualifier != "" {
		ns := searchOpts.Qualifier.Namespace()
		matching := make([]*bare.AuthorityRecord, 0, len(records))
		for _, record := range records {
			if record.HasIdentifier(ns, searchOpts.Identifier) {
				matching = append(matching, record)
			}
		}
		records = matching
	}

	views = s.converter.ExtractMany(records)
	trace.SpanFromContext(ctx).SetAttributes(otel.AttrResultCount.Int(len(views)))

	slog.DebugContext(ctx, "Authority search completed",
		"by_identifier", searchOpts.Qualifier != "",
		"result_count", len(views),
	)
	return views, nil
}

// CreateAuthority implements AuthorityService.CreateAuthority
func (s *authorityService) CreateAuthority(ctx context.Context, invertedName string) (view *authority.View, err error) {
	ctx, finish := s.begin(ctx, opCreate)
	defer func() { finish(err) }()

	draft, err := authority.FromDisplayName(invertedName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.registry.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Authority created", "system_control_number", created.SystemControlNumber)

	return s.refetch(ctx, created.SystemControlNumber)
}

// AddIdentifier implements AuthorityService.AddIdentifier
func (s *authorityService) AddIdentifier(
	ctx context.Context,
	scn, qualifier, value string,
) (view *authority.View, err error) {
	ctx, finish := s.begin(ctx, opAdd,
		otel.AttrSystemControlNumber.String(scn),
		otel.AttrQualifier.String(qualifier),
	)
	defer func() { finish(err) }()

	ns, err := validateIdentifierInput(scn, qualifier, namedValue{"identifier", value})
	if err != nil {
		return nil, err
	}

	current, err := s.registry.Lookup(ctx, scn)
	if err != nil {
		return nil, err
	}
	if current.HasIdentifier(ns, value) {
		return nil, fmt.Errorf("%w: %s %q on authority %s", ErrDuplicateIdentifier, qualifier, value, scn)
	}

	if err := s.registry.AddIdentifier(ctx, scn, bare.IdentifierChange{Namespace: ns, Value: value}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Identifier added",
		"system_control_number", scn,
		"namespace", ns,
	)

	return s.refetch(ctx, scn)
}

// UpdateIdentifier implements AuthorityService.UpdateIdentifier
func (s *authorityService) UpdateIdentifier(
	ctx context.Context,
	scn, qualifier, oldValue, newValue string,
) (view *authority.View, err error) {
	ctx, finish := s.begin(ctx, opUpdate,
		otel.AttrSystemControlNumber.String(scn),
		otel.AttrQualifier.String(qualifier),
	)
	defer func() { finish(err) }()

	ns, err := validateIdentifierInput(scn, qualifier,
		namedValue{"identifier", oldValue},
		namedValue{"updatedIdentifier", newValue},
	)
	if err != nil {
		return nil, err
	}

	if err := s.registry.UpdateIdentifier(ctx, scn, ns, oldValue, newValue); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Identifier updated",
		"system_control_number", scn,
		"namespace", ns,
	)

	return s.refetch(ctx, scn)
}

// DeleteIdentifier implements AuthorityService.DeleteIdentifier
func (s *authorityService) DeleteIdentifier(
	ctx context.Context,
	scn, qualifier, value string,
) (view *authority.View, err error) {
	ctx, finish := s.begin(ctx, opDelete,
		otel.AttrSystemControlNumber.String(scn),
		otel.AttrQualifier.String(qualifier),
	)
	defer func() { finish(err) }()

	ns, err := validateIdentifierInput(scn, qualifier, namedValue{"identifier", value})
	if err != nil {
		return nil, err
	}

	if err := s.registry.DeleteIdentifier(ctx, scn, bare.IdentifierChange{Namespace: ns, Value: value}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Identifier deleted",
		"system_control_number", scn,
		"namespace", ns,
	)

	return s.refetch(ctx, scn)
}

// refetch reads the record back after a mutation has gone through
func (s *authorityService) refetch(ctx context.Context, scn string) (*authority.View, error) {
	record, err := s.registry.Lookup(ctx, scn)
	if err != nil {
		return nil, bare.NewCommunicationFailure(bare.OpLookup, bare.StatusCode(err), refetchFailedDetail, err)
	}
	if record == nil {
		return nil, bare.NewCommunicationFailure(bare.OpLookup, 0, refetchFailedDetail, nil)
	}

	v := s.converter.ToView(record)
	return &v, nil
}

// begin starts the span for an operation and returns the function that records its outcome
func (s *authorityService) begin(
	ctx context.Context,
	operation string,
	attrs ...attribute.KeyValue,
) (context.Context, func(error)) {
	attrs = append(attrs, otel.AttrOperation.String(operation))
	ctx, span := otel.StartSpan(ctx, s.tracer, "AuthorityService."+operation, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		s.metrics.RecordOperation(ctx, operation, Outcome(err))
		if s.tracer == nil {
			return
		}
		otel.RecordError(span, err)
		span.End()
	}
}

// Outcome classifies err into one of the outcome labels
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, ErrDuplicateIdentifier):
		return OutcomeDuplicateIdentifier
	case errors.Is(err, bare.ErrRegistryRejected):
		return OutcomeRegistryRejected
	case errors.Is(err, bare.ErrCommunicationFailure):
		return OutcomeCommunicationFailure
	default:
		return OutcomeError
	}
}

type namedValue struct {
	name  string
	value string
}

func validateIdentifierInput(scn, qualifier string, values ...namedValue) (bare.Namespace, error) {
	if err := requireValue("system control number", scn); err != nil {
		return "", err
	}
	q, err := authority.ParseQualifier(qualifier)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for _, v := range values {
		if err := requireValue(v.name, v.value); err != nil {
			return "", err
		}
	}
	return q.Namespace(), nil
}

func requireValue(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	return nil
}
