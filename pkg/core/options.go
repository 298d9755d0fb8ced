package core

import (
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the pooled HTTP client, e.g. to install a custom
// transport. The per-attempt timeout from config is not applied to a
// caller-supplied client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.mu.Lock()
		c.httpClient = hc
		c.mu.Unlock()
	}
}

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBackoff replaces the backoff policy.
func WithBackoff(b *Backoff) Option {
	return func(c *Client) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithRateLimit installs a client-side token bucket so callers stay
// under the shop's request budget instead of eating 429s.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			if burst <= 0 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithEndpoint overrides the endpoint derived from config, e.g. to
// point at a test server.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.builder.Endpoint = url
	}
}

// WithHeader adds a header to every request the client sends.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.builder.Headers == nil {
			c.builder.Headers = make(map[string]string)
		}
		c.builder.Headers[key] = value
	}
}
