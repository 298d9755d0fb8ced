package config

import (
	"fmt"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultAPIVersion = "2025-07"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
	DefaultPageSize   = 10
	MaxPageSize       = 250
)

// Config holds everything the client needs to reach one shop.
type Config struct {
	ShopDomain    string `yaml:"shop_domain"`              // Required: e.g. "myshop.myshopify.com"
	AccessToken   string `yaml:"access_token"`             // Required: Admin API access token
	APIVersion    string `yaml:"api_version,omitempty"`    // API version (default 2025-07)
	WebhookSecret string `yaml:"webhook_secret,omitempty"` // Shared secret for webhook HMAC

	TimeoutSeconds    float64 `yaml:"timeout_seconds,omitempty"`     // Per-attempt HTTP timeout
	MaxRetries        int     `yaml:"max_retries,omitempty"`         // Retries after the first attempt
	RetryDelaySeconds float64 `yaml:"retry_delay_seconds,omitempty"` // Base backoff delay
	PageSize          int     `yaml:"page_size,omitempty"`           // Default pagination page size
}

// EndpointURL returns the full Admin GraphQL endpoint for this shop.
func (c *Config) EndpointURL() string {
	domain := strings.TrimSuffix(c.ShopDomain, "/")
	domain = strings.TrimPrefix(domain, "https://")
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", domain, c.APIVersion)
}

// Timeout returns the per-attempt timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// RetryDelay returns the base backoff delay as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds * float64(time.Second))
}
