// Package core implements the resilient transport: a thread-safe client
// that posts GraphQL operations to one shop and retries transient
// failures with classified backoff.
package core

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/PKwhiting/shopify-go/pkg/auth"
	"github.com/PKwhiting/shopify-go/pkg/config"
	"github.com/PKwhiting/shopify-go/pkg/errors"
	"github.com/PKwhiting/shopify-go/pkg/graphql"
)

// Stats holds request counters, updated atomically.
type Stats struct {
	TotalRequests uint64
	TotalErrors   uint64
	RateLimited   uint64
}

// Client is a thread-safe GraphQL transport for one shop. Any number of
// goroutines may call Execute concurrently; they share one pooled
// *http.Client whose creation (not its use) is serialized.
type Client struct {
	cfg     *config.Config
	builder *graphql.Builder
	backoff *Backoff
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu         sync.Mutex
	httpClient *http.Client
	closed     bool

	totalReqs   atomic.Uint64
	totalErrors atomic.Uint64
	rateLimited atomic.Uint64
}

// NewClient builds a Client from cfg plus options.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.WrapError(
			errors.ErrValidation, errors.ErrConfiguration, "nil config",
		)
	}

	c := &Client{
		cfg:     cfg,
		backoff: NewBackoff(cfg.RetryDelay()),
		logger:  zerolog.Nop(),
	}
	c.builder = graphql.NewBuilder(
		cfg.EndpointURL(),
		nil,
		auth.NewAccessTokenAuth(cfg.AccessToken),
	)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Execute sends one query/variables pair and returns the parsed
// envelope. On failure the error carries an *errors.APIError.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*graphql.Response, error) {
	return c.Do(ctx, c.builder.NewRequest(query, variables))
}

// Do sends a pre-built Request through the retry loop.
//
// Retryable classifications (network, 429, 5xx, embedded throttling)
// sleep per the backoff policy and try again up to MaxRetries. Anything
// else surfaces immediately: retrying a bad query only burns quota.
// When retries run out, the caller gets the last classified failure,
// not a generic timeout.
func (c *Client) Do(ctx context.Context, req *graphql.Request) (*graphql.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	c.totalReqs.Add(1)

	var last *errors.APIError
	maxRetries := c.cfg.MaxRetries

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, failure := c.attempt(ctx, req)
		if failure == nil {
			return resp, nil
		}
		last = failure

		if failure.Kind == errors.KindRateLimited {
			c.rateLimited.Add(1)
		}
		if !failure.Retryable {
			c.totalErrors.Add(1)
			return nil, failure
		}
		if attempt == maxRetries {
			break
		}

		delay := c.backoff.NextDelay(attempt, failure)
		c.logger.Debug().
			Int("attempt", attempt+1).
			Str("kind", failure.Kind.String()).
			Dur("delay", delay).
			Msg("retrying request")

		select {
		case <-ctx.Done():
			c.totalErrors.Add(1)
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	c.totalErrors.Add(1)
	return nil, last
}

// attempt issues one HTTP call and classifies the outcome. A nil
// failure means resp is usable.
func (c *Client) attempt(ctx context.Context, req *graphql.Request) (*graphql.Response, *errors.APIError) {
	httpClient, err := c.pooledClient()
	if err != nil {
		return nil, &errors.APIError{
			Kind:      errors.KindNetwork,
			Retryable: false,
			Message:   err.Error(),
		}
	}

	httpReq, err := c.builder.Build(ctx, req)
	if err != nil {
		return nil, (&errors.APIError{
			Kind:      errors.KindClient,
			Retryable: false,
			Message:   "build request: " + err.Error(),
		}).WithCause(err)
	}

	httpResp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, graphql.Classify(0, nil, nil, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, graphql.Classify(httpResp.StatusCode, httpResp.Header, nil, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, graphql.Classify(httpResp.StatusCode, httpResp.Header, nil, nil)
	}

	resp, parseErr := graphql.ParseResponse(body)
	if parseErr != nil {
		apiErr, _ := errors.AsAPIError(parseErr)
		return nil, apiErr
	}

	if failure := graphql.Classify(httpResp.StatusCode, httpResp.Header, resp, nil); failure != nil {
		return nil, failure
	}
	return resp, nil
}

// pooledClient returns the shared *http.Client, creating it on first
// use. Only the check-or-create runs under the lock so concurrent
// callers never serialize their network I/O.
func (c *Client) pooledClient() (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errors.WrapError(
			errors.ErrHTTPRequest, errors.ErrConfiguration, "client is closed",
		)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.cfg.Timeout()}
	}
	return c.httpClient, nil
}

// Close releases the pooled connections. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
}

// Stats returns a snapshot of request statistics.
func (c *Client) Stats() Stats {
	return Stats{
		TotalRequests: c.totalReqs.Load(),
		TotalErrors:   c.totalErrors.Load(),
		RateLimited:   c.rateLimited.Load(),
	}
}

// Config exposes the client configuration (read-only by convention).
func (c *Client) Config() *config.Config { return c.cfg }
