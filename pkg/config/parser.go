package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader defines the interface for loading configs
type Loader interface {
	Load(path string) (*Config, error)
	Parse(data []byte) (*Config, error)
}

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator interface {
	Validate(cfg *Config) []ValidationError
}

// DefaultValueSetter handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(cfg *Config)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// ConfigLoader loads client Config from YAML files.
type ConfigLoader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewConfigLoader creates a new ConfigLoader with the given components
func NewConfigLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *ConfigLoader {
	return &ConfigLoader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader wires the standard expander, defaults and validators.
func NewDefaultLoader() *ConfigLoader {
	return NewConfigLoader(&EnvExpander{}, &ConfigDefaults{}, &RequiredFieldValidator{}, &BoundsValidator{})
}

// Load reads a client config from a YAML file
func (l *ConfigLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *ConfigLoader) Parse(data []byte) (*Config, error) {
	// Expand variables if an expander is configured
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Set default values if a default setter is configured
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	// Validate the configuration
	var allErrors []ValidationError
	for _, validator := range l.validators {
		errs := validator.Validate(&cfg)
		allErrors = append(allErrors, errs...)
	}

	if len(allErrors) > 0 {
		return nil, fmt.Errorf("validation errors: %v", allErrors)
	}

	return &cfg, nil
}

// FromEnv builds a Config from SHOPIFY_* environment variables, applying
// the same defaults and validation as the YAML path. Numeric variables
// that fail to parse are left at their defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ShopDomain:    os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		AccessToken:   os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		APIVersion:    os.Getenv("SHOPIFY_API_VERSION"),
		WebhookSecret: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),
	}
	if v := os.Getenv("SHOPIFY_TIMEOUT_SECONDS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TimeoutSeconds = f
		}
	}
	if v := os.Getenv("SHOPIFY_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("SHOPIFY_RETRY_DELAY_SECONDS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RetryDelaySeconds = f
		}
	}
	if v := os.Getenv("SHOPIFY_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}

	(&ConfigDefaults{}).SetDefaults(cfg)

	var allErrors []ValidationError
	for _, validator := range []Validator{&RequiredFieldValidator{}, &BoundsValidator{}} {
		allErrors = append(allErrors, validator.Validate(cfg)...)
	}
	if len(allErrors) > 0 {
		return nil, fmt.Errorf("validation errors: %v", allErrors)
	}
	return cfg, nil
}

// ConfigDefaults implements DefaultValueSetter for Config
type ConfigDefaults struct{}

// SetDefaults sets default values for Config
func (d *ConfigDefaults) SetDefaults(cfg *Config) {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = DefaultTimeout.Seconds()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelaySeconds == 0 {
		cfg.RetryDelaySeconds = DefaultRetryDelay.Seconds()
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
}

// RequiredFieldValidator validates required fields for the client
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(cfg.ShopDomain) == "" {
		errs = append(errs, ValidationError{Field: "shop_domain", Message: "shop domain is required"})
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		errs = append(errs, ValidationError{Field: "access_token", Message: "access token is required"})
	}
	if cfg.APIVersion != "" && len(strings.Split(cfg.APIVersion, "-")) != 2 {
		errs = append(errs, ValidationError{
			Field:   "api_version",
			Message: fmt.Sprintf("invalid format %q, expected YYYY-MM", cfg.APIVersion),
		})
	}
	return errs
}

// BoundsValidator checks numeric settings are within sane ranges
type BoundsValidator struct{}

// Validate checks numeric bounds
func (v *BoundsValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	if cfg.TimeoutSeconds < 0 {
		errs = append(errs, ValidationError{Field: "timeout_seconds", Message: "must not be negative"})
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, ValidationError{Field: "max_retries", Message: "must not be negative"})
	}
	if cfg.RetryDelaySeconds < 0 {
		errs = append(errs, ValidationError{Field: "retry_delay_seconds", Message: "must not be negative"})
	}
	if cfg.PageSize < 0 || cfg.PageSize > MaxPageSize {
		errs = append(errs, ValidationError{
			Field:   "page_size",
			Message: fmt.Sprintf("must be between 1 and %d", MaxPageSize),
		})
	}
	return errs
}
