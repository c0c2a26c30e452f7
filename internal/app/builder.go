package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sikt-no/authority-registry-api/internal/api"
	"github.com/sikt-no/authority-registry-api/internal/authority"
	"github.com/sikt-no/authority-registry-api/internal/bare"
	"github.com/sikt-no/authority-registry-api/internal/config"
	"github.com/sikt-no/authority-registry-api/internal/service"
	"github.com/sikt-no/authority-registry-api/internal/telemetry"
)

const (
	defaultHTTPAddress = ":8080"

	// A mutation makes up to three sequential registry calls
	defaultRequestTimeout = 60 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 65 * time.Second
	defaultIdleTimeout    = 60 * time.Second
)

// AuthorityAppOptions is a function that configures the authority app
type AuthorityAppOptions func(*authorityAppConfig) error

type authorityAppConfig struct {
	config *config.Config

	// Overrides, primarily for testing
	registryClient bare.RegistryClient

	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	metricsHandler http.Handler
}

func baseConfig(opts ...AuthorityAppOptions) (*authorityAppConfig, error) {
	cfg := &authorityAppConfig{
		address:        defaultHTTPAddress,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// NewAuthorityApp assembles the registry client, the authority service and the HTTP server
func NewAuthorityApp(ctx context.Context, opts ...AuthorityAppOptions) (*AuthorityApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if cfg.registryClient == nil {
		cfg.registryClient, err = buildRegistryClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build registry client: %w", err)
		}
	}

	authorityService, err := buildServiceComponents(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build service components: %w", err)
	}

	httpServer, err := buildHTTPServer(ctx, cfg, authorityService)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	return &AuthorityApp{
		config: cfg.config,
		components: &AppComponents{
			RegistryClient:   cfg.registryClient,
			AuthorityService: authorityService,
		},
		httpServer: httpServer,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) AuthorityAppOptions {
	return func(cfg *authorityAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address
func WithAddress(addr string) AuthorityAppOptions {
	return func(cfg *authorityAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		host, port, err := net.SplitHostPort(addr)
		if err != nil || port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		switch host {
		case "localhost":
			host = "127.0.0.1"
		case "":
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(net.JoinHostPort(host, port)); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares replaces the default HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) AuthorityAppOptions {
	return func(cfg *authorityAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithRegistryClient injects a registry client instead of building one from the configuration
func WithRegistryClient(c bare.RegistryClient) AuthorityAppOptions {
	return func(cfg *authorityAppConfig) error {
		cfg.registryClient = c
		return nil
	}
}

// WithTracerProvider traces inbound requests, service operations and registry calls
func WithTracerProvider(tp trace.TracerProvider) AuthorityAppOptions {
	return func(cfg *authorityAppConfig) error {
		cfg.tracerProvider = tp
		return nil
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for HTTP, service and registry metrics
func WithMeterProvider(mp metric.MeterProvider) AuthorityAppOptions {
	return func(cfg *authorityAppConfig) error {
		cfg.meterProvider = mp
		return nil
	}
}

// WithMetricsHandler serves h on /metrics
func WithMetricsHandler(h http.Handler) AuthorityAppOptions {
	return func(cfg *authorityAppConfig) error {
		cfg.metricsHandler = h
		return nil
	}
}

func buildRegistryClient(b *authorityAppConfig) (*bare.Client, error) {
	slog.Info("Initializing registry client", "registry", b.config.Registry.BaseURL())

	apiKey, err := b.config.Registry.GetAPIKey()
	if err != nil {
		return nil, err
	}

	opts := []bare.ClientOption{
		bare.WithSearchLimit(b.config.Registry.GetSearchLimit()),
		bare.WithTracerProvider(b.tracerProvider),
	}

	registryMetrics, err := telemetry.NewRegistryMetrics(b.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry metrics: %w", err)
	}
	if registryMetrics != nil {
		opts = append(opts, bare.WithMetrics(registryMetrics))
		slog.Info("Registry metrics enabled")
	}

	return bare.NewClient(bare.Config{
		BaseURL: b.config.Registry.BaseURL(),
		APIKey:  apiKey,
		Timeout: b.config.Registry.GetTimeout(),
	}, opts...)
}

func buildServiceComponents(b *authorityAppConfig) (service.AuthorityService, error) {
	slog.Info("Initializing service components", "base_address", b.config.GetBaseAddress())

	converter, err := authority.NewConverter(b.config.GetBaseAddress())
	if err != nil {
		return nil, fmt.Errorf("failed to create converter: %w", err)
	}

	opts := []service.ServiceOption{
		service.WithTracerProvider(b.tracerProvider),
	}

	operationMetrics, err := telemetry.NewOperationMetrics(b.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation metrics: %w", err)
	}
	if operationMetrics != nil {
		opts = append(opts, service.WithOperationMetrics(operationMetrics))
	}

	svc, err := service.NewAuthorityService(b.registryClient, converter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create authority service: %w", err)
	}

	return svc, nil
}

//nolint:unparam // we prefer having a similar interface
func buildHTTPServer(
	_ context.Context,
	b *authorityAppConfig,
	svc service.AuthorityService,
) (*http.Server, error) {
	slog.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	// Telemetry goes first so that it sees requests rejected further down the chain
	var telemetryMiddlewares []func(http.Handler) http.Handler
	if b.meterProvider != nil {
		metricsMiddleware, err := telemetry.MetricsMiddleware(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
		}
		telemetryMiddlewares = append(telemetryMiddlewares, metricsMiddleware)
		slog.Info("HTTP metrics middleware enabled")
	}
	if b.tracerProvider != nil {
		telemetryMiddlewares = append(telemetryMiddlewares, telemetry.TracingMiddleware(b.tracerProvider))
	}
	middlewares := append(telemetryMiddlewares, b.middlewares...)

	serverOpts := []api.ServerOption{
		api.WithMiddlewares(middlewares...),
	}
	if b.metricsHandler != nil {
		serverOpts = append(serverOpts, api.WithMetricsHandler(b.metricsHandler))
	}

	router := api.NewServer(svc, serverOpts...)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	slog.Info("HTTP server configured", "address", b.address)
	return server, nil
}
