package bare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/sikt-no/authority-registry-api/internal/httpclient"
	appotel "github.com/sikt-no/authority-registry-api/internal/otel"
	"github.com/sikt-no/authority-registry-api/internal/telemetry"
)

const (
	// DefaultTimeout bounds every single registry call
	DefaultTimeout = 15 * time.Second

	// DefaultSearchLimit is the maximum number of records requested per search
	DefaultSearchLimit = 10

	// APIKeyHeader carries the registry API key
	APIKeyHeader = "apikey"

	// TracerName is the name used for the registry client tracer
	TracerName = "github.com/sikt-no/authority-registry-api/bare"

	authoritiesPath = "/authority/rest/authorities/v2"
	createPath      = "/authority/rest/functions/v2/create"
	queryPath       = "/authority/rest/functions/v2/query"
)

// Operation names, used in errors, spans and metrics
const (
	OpLookup           = "lookup"
	OpSearch           = "search"
	OpCreate           = "create"
	OpAddIdentifier    = "add identifier"
	OpDeleteIdentifier = "delete identifier"
)

// emptyResponseDetail is the detail reported when a success response carries no usable record
const emptyResponseDetail = "empty response from server"

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=client.go RegistryClient

// RegistryClient defines the remote operations offered by the registry
type RegistryClient interface {
	// Lookup fetches a record by system control number
	Lookup(ctx context.Context, scn string) (*AuthorityRecord, error)

	// Search runs a free-text query and returns the matching records
	Search(ctx context.Context, query string) ([]*AuthorityRecord, error)

	// Create submits a draft record and returns the record as stored by the registry
	Create(ctx context.Context, draft *AuthorityRecord) (*AuthorityRecord, error)

	// AddIdentifier adds one identifier to a record
	AddIdentifier(ctx context.Context, scn string, change IdentifierChange) error

	// DeleteIdentifier removes one identifier from a record
	DeleteIdentifier(ctx context.Context, scn string, change IdentifierChange) error

	// UpdateIdentifier replaces oldValue with newValue by deleting and then adding.
	// It is not atomic.
	UpdateIdentifier(ctx context.Context, scn string, ns Namespace, oldValue, newValue string) error
}

// Config holds the connection settings for the registry
type Config struct {
	// BaseURL is the scheme and host of the registry, e.g. https://authority.example.org
	BaseURL string

	// APIKey is sent in the apikey header of every request
	APIKey string

	// Timeout bounds each call; DefaultTimeout when zero
	Timeout time.Duration
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used to reach the registry
func WithHTTPClient(c httpclient.Client) ClientOption {
	return func(client *Client) {
		client.http = c
	}
}

// WithTracerProvider enables tracing of registry calls
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(client *Client) {
		if tp != nil {
			client.tracer = tp.Tracer(TracerName)
		}
	}
}

// WithMetrics records the duration and outcome of every registry call
func WithMetrics(m *telemetry.RegistryMetrics) ClientOption {
	return func(client *Client) {
		client.metrics = m
	}
}

// WithSearchLimit sets the maximum number of records requested by Search
func WithSearchLimit(limit int) ClientOption {
	return func(client *Client) {
		if limit > 0 {
			client.searchLimit = limit
		}
	}
}

// Client talks to the registry REST API
type Client struct {
	http        httpclient.Client
	baseURL     *url.URL
	searchLimit int
	tracer      trace.Tracer
	metrics     *telemetry.RegistryMetrics
}

var _ RegistryClient = (*Client)(nil)

// NewClient creates a registry client. The base URL and API key must not be blank.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("registry base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("registry API key is required")
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid registry base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("registry base URL must include scheme and host: %s", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:     base,
		searchLimit: DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewDefaultClient(timeout, httpclient.WithHeader(APIKeyHeader, cfg.APIKey))
	}

	return c, nil
}

// Lookup fetches a record by system control number. Any status other than 200 is a
// communication failure, since the caller asked for a record it expects to exist.
func (c *Client) Lookup(ctx context.Context, scn string) (record *AuthorityRecord, err error) {
	ctx, done := c.startCall(ctx, OpLookup, scn)
	defer func() { done(err) }()

	u := c.endpoint(authoritiesPath, scn)
	u.RawQuery = url.Values{"format": []string{"json"}}.Encode()

	resp, err := c.send(ctx, OpLookup, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewCommunicationFailure(OpLookup, resp.StatusCode, string(resp.Body), nil)
	}

	return decodeRecord(OpLookup, resp)
}

// Search runs a query against the registry. An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string) (records []*AuthorityRecord, err error) {
	ctx, done := c.startCall(ctx, OpSearch, "")
	defer func() { done(err) }()

	u := c.endpoint(queryPath)
	u.RawQuery = url.Values{
		"q":      []string{query},
		"start":  []string{"1"},
		"max":    []string{strconv.Itoa(c.searchLimit)},
		"format": []string{"json"},
	}.Encode()

	resp, err := c.send(ctx, OpSearch, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewCommunicationFailure(OpSearch, resp.StatusCode, string(resp.Body), nil)
	}
	if isBlank(resp.Body) {
		return []*AuthorityRecord{}, nil
	}

	var result SearchResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, NewCommunicationFailure(OpSearch, resp.StatusCode, "unparseable search result", err)
	}
	if result.Results == nil {
		return []*AuthorityRecord{}, nil
	}
	return result.Results, nil
}

// Create submits a draft record. The registry must answer 200 or 201 with the stored record.
// A nil draft fails with ErrInvalidDraft without contacting the registry.
func (c *Client) Create(ctx context.Context, draft *AuthorityRecord) (record *AuthorityRecord, err error) {
	ctx, done := c.startCall(ctx, OpCreate, "")
	defer func() { done(err) }()

	if draft == nil {
		return nil, fmt.Errorf("%s: %w", OpCreate, ErrInvalidDraft)
	}

	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft record: %w", err)
	}

	u := c.endpoint(createPath)
	u.RawQuery = url.Values{"format": []string{"json"}}.Encode()

	resp, err := c.send(ctx, OpCreate, http.MethodPost, u, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, NewRejected(OpCreate, resp.StatusCode, string(resp.Body))
	}

	record, err = decodeRecord(OpCreate, resp)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(record.SystemControlNumber) == "" {
		return nil, NewCommunicationFailure(OpCreate, resp.StatusCode, "created record has no system control number", nil)
	}
	return record, nil
}

// AddIdentifier adds one identifier. Success is 200 or 204.
func (c *Client) AddIdentifier(ctx context.Context, scn string, change IdentifierChange) (err error) {
	ctx, done := c.startCall(ctx, OpAddIdentifier, scn)
	defer func() { done(err) }()

	body, err := json.Marshal(identifierPayload{Source: string(change.Namespace), Identifier: change.Value})
	if err != nil {
		return fmt.Errorf("failed to encode identifier: %w", err)
	}

	resp, err := c.send(ctx, OpAddIdentifier, http.MethodPost, c.endpoint(authoritiesPath, scn, "identifiers"), body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return NewRejected(OpAddIdentifier, resp.StatusCode, string(resp.Body))
	}
	return nil
}

// DeleteIdentifier removes one identifier. Only 200 counts as success; 204 does not.
func (c *Client) DeleteIdentifier(ctx context.Context, scn string, change IdentifierChange) (err error) {
	ctx, done := c.startCall(ctx, OpDeleteIdentifier, scn)
	defer func() { done(err) }()

	u := c.endpoint(authoritiesPath, scn, "identifiers", string(change.Namespace))
	u.RawQuery = url.Values{"identifier": []string{change.Value}}.Encode()

	resp, err := c.send(ctx, OpDeleteIdentifier, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return NewRejected(OpDeleteIdentifier, resp.StatusCode, string(resp.Body))
	}
	return nil
}

// UpdateIdentifier deletes oldValue and then adds newValue. The add is attempted even if the
// registry refused the delete, and its outcome is the one returned. A transport failure on the
// delete aborts the update. If the delete succeeds and the add fails, the record is left
// without either value; callers re-fetch to learn the final state.
func (c *Client) UpdateIdentifier(ctx context.Context, scn string, ns Namespace, oldValue, newValue string) error {
	err := c.DeleteIdentifier(ctx, scn, IdentifierChange{Namespace: ns, Value: oldValue})
	if err != nil {
		if !errors.Is(err, ErrRegistryRejected) {
			return err
		}
		slog.WarnContext(ctx, "Registry refused to delete old identifier, adding new identifier anyway",
			"system_control_number", scn,
			"namespace", ns,
			"status_code", StatusCode(err),
		)
	}

	return c.AddIdentifier(ctx, scn, IdentifierChange{Namespace: ns, Value: newValue})
}

type identifierPayload struct {
	Source     string `json:"source"`
	Identifier string `json:"identifier"`
}

// endpoint joins path segments onto the base URL, escaping each segment
func (c *Client) endpoint(path string, segments ...string) *url.URL {
	raw := strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + path
	for _, s := range segments {
		raw += "/" + url.PathEscape(s)
	}

	u := *c.baseURL
	u.RawPath = raw
	u.Path, _ = url.PathUnescape(raw)
	return &u
}

func (c *Client) send(ctx context.Context, op, method string, u *url.URL, body []byte) (*httpclient.Response, error) {
	req := &httpclient.Request{
		Method: method,
		URL:    u.String(),
		Body:   body,
		Header: http.Header{"Content-Type": []string{"application/json"}},
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, NewCommunicationFailure(op, 0, "", err)
	}

	if c.tracer != nil {
		trace.SpanFromContext(ctx).SetAttributes(appotel.AttrRegistryStatus.Int(resp.StatusCode))
	}
	return resp, nil
}

// startCall opens a span for a registry call and returns the function that closes it
func (c *Client) startCall(ctx context.Context, op, scn string) (context.Context, func(error)) {
	ctx, span := appotel.StartClientSpan(ctx, c.tracer, op, appotel.AttrSystemControlNumber.String(scn))
	start := time.Now()

	return ctx, func(err error) {
		c.metrics.RecordCall(ctx, op, time.Since(start), err == nil)
		if c.tracer == nil {
			return
		}
		appotel.RecordError(span, err)
		span.End()
	}
}

func decodeRecord(op string, resp *httpclient.Response) (*AuthorityRecord, error) {
	if isBlank(resp.Body) {
		return nil, NewCommunicationFailure(op, resp.StatusCode, emptyResponseDetail, nil)
	}

	var record AuthorityRecord
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, NewCommunicationFailure(op, resp.StatusCode, emptyResponseDetail, err)
	}
	return &record, nil
}

func isBlank(body []byte) bool {
	return strings.TrimSpace(string(body)) == ""
}
