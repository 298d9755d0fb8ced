// Package errors defines the failure taxonomy shared by the client.
//
// Every failure the transport surfaces is an *APIError carrying a Kind,
// so callers can branch on what went wrong (back off, alert, or fix the
// query) instead of string-matching messages.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failure.
type Kind int

const (
	// KindNetwork is a transport-level I/O failure (timeout, refused, DNS).
	KindNetwork Kind = iota
	// KindRateLimited is HTTP 429 or a throttling signal embedded in a
	// GraphQL errors array.
	KindRateLimited
	// KindGraphQL is a semantic query error on an otherwise valid response.
	KindGraphQL
	// KindServer is HTTP 5xx.
	KindServer
	// KindClient is HTTP 4xx other than 429, a caller or query fault.
	KindClient
	// KindMalformed is an unparseable or structurally unexpected body.
	KindMalformed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRateLimited:
		return "rate_limited"
	case KindGraphQL:
		return "graphql"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// APIError is a classified failure.
type APIError struct {
	Kind       Kind
	Retryable  bool
	RetryAfter time.Duration // explicit server hint; 0 means unset
	StatusCode int           // HTTP status; 0 when no response was received
	Message    string
	// BodySnippet preserves the start of an unparseable body for
	// diagnostics. Empty unless Kind is KindMalformed.
	BodySnippet string

	cause error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error { return e.cause }

// WithCause attaches an underlying error and returns e for chaining.
func (e *APIError) WithCause(err error) *APIError {
	e.cause = err
	return e
}

// AsAPIError unwraps err to an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Standard error types
var (
	ErrConfiguration = errors.New("configuration error")
	ErrHTTPRequest   = errors.New("HTTP request error")
	ErrHTTPResponse  = errors.New("HTTP response error")
	ErrPagination    = errors.New("pagination error")
	ErrExtraction    = errors.New("data extraction error")
	ErrWebhook       = errors.New("webhook error")
	ErrValidation    = errors.New("validation error")
)

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	return fmt.Errorf("%w: %v", errType, wrapped)
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
