// Package config provides configuration loading and management for the authority API.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sikt-no/authority-registry-api/internal/telemetry"
)

const (
	// EnvPrefix is the prefix of every environment variable read by the service
	EnvPrefix = "AUTHORITY_API"

	// DefaultScheme is used to reach the registry when no scheme is configured
	DefaultScheme = "https"

	// DefaultTimeout bounds each registry call when no timeout is configured
	DefaultTimeout = 15 * time.Second

	// DefaultSearchLimit is the number of records requested per search when not configured
	DefaultSearchLimit = 10

	// authorityPath is appended to the registry URL to form the default base address
	authorityPath = "/authority/rest/authorities/v2"
)

// Environment keys, read with the EnvPrefix prefix (e.g. AUTHORITY_API_REGISTRY_HOST)
const (
	EnvRegistryHost   = "REGISTRY_HOST"
	EnvRegistryAPIKey = "REGISTRY_API_KEY"
	EnvRegistryScheme = "REGISTRY_SCHEME"
	EnvBaseAddress    = "AUTHORITY_BASE_ADDRESS"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
	env  *viper.Viper
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) && !filepath.IsLocal(realPath) {
			return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}

		cfg.path = realPath
		return nil
	}
}

// WithEnv reads environment overrides from v instead of the process environment.
// Keys are looked up without the prefix.
func WithEnv(v *viper.Viper) Option {
	return func(cfg *loaderConfig) error {
		if v == nil {
			return fmt.Errorf("viper instance is required")
		}
		cfg.env = v
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Registry  RegistryConfig    `yaml:"registry"`
	Authority AuthorityConfig   `yaml:"authority,omitempty"`
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// RegistryConfig defines how the registry is reached
type RegistryConfig struct {
	// Host is the registry host, optionally with a port
	Host string `yaml:"host"`

	// Scheme is http or https. Defaults to https.
	Scheme string `yaml:"scheme,omitempty"`

	// APIKey is sent with every registry request
	APIKey string `yaml:"apiKey,omitempty"`

	// APIKeyFile is a file holding the API key. It takes precedence over APIKey.
	APIKeyFile string `yaml:"apiKeyFile,omitempty"`

	// Timeout bounds each registry call, e.g. "15s"
	Timeout string `yaml:"timeout,omitempty"`

	// SearchLimit is the maximum number of records requested per search
	SearchLimit int `yaml:"searchLimit,omitempty"`
}

// AuthorityConfig holds settings for the views returned to callers
type AuthorityConfig struct {
	// BaseAddress prefixes the id of every returned authority.
	// Defaults to the registry's authority endpoint.
	BaseAddress string `yaml:"baseAddress,omitempty"`
}

// LoadConfig loads the configuration from the optional YAML file and applies environment overrides
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	var config Config
	if loaderCfg.path != "" {
		data, err := os.ReadFile(loaderCfg.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	env := loaderCfg.env
	if env == nil {
		env = viper.New()
		env.SetEnvPrefix(EnvPrefix)
		env.AutomaticEnv()
	}
	config.applyEnv(env)

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) applyEnv(env *viper.Viper) {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvRegistryHost, &c.Registry.Host},
		{EnvRegistryAPIKey, &c.Registry.APIKey},
		{EnvRegistryScheme, &c.Registry.Scheme},
		{EnvBaseAddress, &c.Authority.BaseAddress},
	}
	for _, o := range overrides {
		if v := env.GetString(o.key); v != "" {
			*o.target = v
		}
	}
}

// GetAPIKey returns the registry API key, read from APIKeyFile when set
func (r *RegistryConfig) GetAPIKey() (string, error) {
	if r.APIKeyFile != "" {
		data, err := os.ReadFile(filepath.Clean(r.APIKeyFile))
		if err != nil {
			return "", fmt.Errorf("failed to read API key from file %s: %w", r.APIKeyFile, err)
		}
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
		return "", fmt.Errorf("API key file %s is empty", r.APIKeyFile)
	}

	if key := strings.TrimSpace(r.APIKey); key != "" {
		return key, nil
	}

	return "", fmt.Errorf(
		"no registry API key configured: set registry.apiKeyFile, registry.apiKey or %s_%s",
		EnvPrefix, EnvRegistryAPIKey,
	)
}

// GetScheme returns the registry scheme, using DefaultScheme if not specified
func (r *RegistryConfig) GetScheme() string {
	if r.Scheme == "" {
		return DefaultScheme
	}
	return strings.ToLower(r.Scheme)
}

// GetTimeout returns the per-call timeout, using DefaultTimeout if not specified.
// Validation should be performed before calling this method.
func (r *RegistryConfig) GetTimeout() time.Duration {
	if r.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// GetSearchLimit returns the search limit, using DefaultSearchLimit if not specified
func (r *RegistryConfig) GetSearchLimit() int {
	if r.SearchLimit <= 0 {
		return DefaultSearchLimit
	}
	return r.SearchLimit
}

// BaseURL returns the scheme and host of the registry
func (r *RegistryConfig) BaseURL() string {
	return (&url.URL{Scheme: r.GetScheme(), Host: strings.TrimSpace(r.Host)}).String()
}

// GetBaseAddress returns the base address for authority ids
func (c *Config) GetBaseAddress() string {
	if c.Authority.BaseAddress != "" {
		return c.Authority.BaseAddress
	}
	return c.Registry.BaseURL() + authorityPath
}

func (c *Config) validate() error {
	var errs []error

	if err := c.Registry.validate(); err != nil {
		errs = append(errs, fmt.Errorf("registry: %w", err))
	}

	if c.Authority.BaseAddress != "" {
		u, err := url.Parse(c.Authority.BaseAddress)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("authority.baseAddress must be an absolute URL: %q", c.Authority.BaseAddress))
		}
	}

	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}

	return errors.Join(errs...)
}

func (r *RegistryConfig) validate() error {
	host := strings.TrimSpace(r.Host)
	if host == "" {
		return fmt.Errorf("host is required (registry.host or %s_%s)", EnvPrefix, EnvRegistryHost)
	}
	if strings.Contains(host, "/") {
		return fmt.Errorf("host must not contain a scheme or path: %q", r.Host)
	}

	switch r.GetScheme() {
	case "http", "https":
	default:
		return fmt.Errorf("scheme must be http or https, got %q", r.Scheme)
	}

	if _, err := r.GetAPIKey(); err != nil {
		return err
	}

	if r.Timeout != "" {
		d, err := time.ParseDuration(r.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", r.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
	}

	if r.SearchLimit < 0 {
		return fmt.Errorf("searchLimit must not be negative, got %d", r.SearchLimit)
	}

	return nil
}
