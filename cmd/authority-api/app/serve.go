package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	authorityapp "github.com/sikt-no/authority-registry-api/internal/app"
	"github.com/sikt-no/authority-registry-api/internal/config"
	"github.com/sikt-no/authority-registry-api/internal/telemetry"
	"github.com/sikt-no/authority-registry-api/internal/versions"
)

const (
	defaultGracefulTimeout = 30 * time.Second

	flagAddress = "address"
	flagConfig  = "config"
)

func newServeCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the authority API server",
		Long: `Start the authority API server.

Settings are read from an optional YAML file (--config) and from AUTHORITY_API_*
environment variables, which take precedence. At minimum the registry host and
API key must be set:

  AUTHORITY_API_REGISTRY_HOST
  AUTHORITY_API_REGISTRY_API_KEY

See examples/config-full.yaml for every setting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	cmd.Flags().String(flagAddress, ":8080", "Address to listen on")
	cmd.Flags().String(flagConfig, "", "Path to configuration file (YAML format)")

	if err := v.BindPFlag(flagAddress, cmd.Flags().Lookup(flagAddress)); err != nil {
		slog.Error("Failed to bind address flag", "error", err)
	}
	if err := v.BindPFlag(flagConfig, cmd.Flags().Lookup(flagConfig)); err != nil {
		slog.Error("Failed to bind config flag", "error", err)
	}

	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	if cfg.Telemetry != nil && cfg.Telemetry.ServiceVersion == "" {
		cfg.Telemetry.ServiceVersion = versions.GetVersionInfo().Version
	}
	tel, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down telemetry", "error", err)
		}
	}()

	server, err := authorityapp.NewAuthorityApp(ctx,
		authorityapp.WithConfig(cfg),
		authorityapp.WithAddress(v.GetString(flagAddress)),
		authorityapp.WithTracerProvider(tel.TracerProvider()),
		authorityapp.WithMeterProvider(tel.MeterProvider()),
		authorityapp.WithMetricsHandler(tel.MetricsHandler()),
	)
	if err != nil {
		return fmt.Errorf("failed to create authority app: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop(defaultGracefulTimeout)
	})

	return g.Wait()
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	var opts []config.Option
	if path := v.GetString(flagConfig); path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}

	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Configuration loaded",
		"config_file", v.GetString(flagConfig),
		"registry", cfg.Registry.BaseURL(),
		"base_address", cfg.GetBaseAddress(),
	)
	return cfg, nil
}
