package graphql

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PKwhiting/shopify-go/pkg/errors"
)

// Classify inspects one attempt's outcome and produces a typed failure
// plus a retry decision. It is a pure function of its inputs: no I/O,
// no state. A nil return means the attempt produced no failure.
//
// Precedence: transport error, then HTTP status, then the GraphQL
// errors array of an otherwise successful response.
func Classify(status int, header http.Header, resp *Response, transportErr error) *errors.APIError {
	if transportErr != nil {
		return (&errors.APIError{
			Kind:      errors.KindNetwork,
			Retryable: true,
			Message:   transportErr.Error(),
		}).WithCause(transportErr)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return &errors.APIError{
			Kind:       errors.KindRateLimited,
			Retryable:  true,
			RetryAfter: parseRetryAfter(header),
			StatusCode: status,
			Message:    "rate limit exceeded",
		}
	case status >= 500:
		return &errors.APIError{
			Kind:       errors.KindServer,
			Retryable:  true,
			StatusCode: status,
			Message:    fmt.Sprintf("server error: %s", http.StatusText(status)),
		}
	case status >= 400:
		return &errors.APIError{
			Kind:       errors.KindClient,
			Retryable:  false,
			StatusCode: status,
			Message:    clientErrorMessage(status),
		}
	}

	if resp != nil && resp.HasErrors() {
		return classifyGraphQLErrors(status, resp)
	}
	return nil
}

// classifyGraphQLErrors inspects the errors array of an HTTP 200
// response. Throttling can hide in there: extensions.code THROTTLED
// (or message heuristics when extensions are absent) marks the whole
// response retryable. Anything else is the caller's query to fix.
func classifyGraphQLErrors(status int, resp *Response) *errors.APIError {
	for _, e := range resp.Errors {
		if isThrottled(&e) {
			return &errors.APIError{
				Kind:       errors.KindGraphQL,
				Retryable:  true,
				RetryAfter: extensionRetryAfter(&e),
				StatusCode: status,
				Message:    "throttled: " + e.Message,
			}
		}
	}
	return &errors.APIError{
		Kind:       errors.KindGraphQL,
		Retryable:  false,
		StatusCode: status,
		Message:    resp.ErrorMessages(),
	}
}

func isThrottled(e *ResponseError) bool {
	if e.Code() == "THROTTLED" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "throttled")
}

// extensionRetryAfter reads extensions.retryAfter, which Shopify sends
// as a JSON number of seconds.
func extensionRetryAfter(e *ResponseError) time.Duration {
	if e.Extensions == nil {
		return 0
	}
	secs, ok := e.Extensions["retryAfter"].(float64)
	if !ok || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms of the
// Retry-After header. Unparseable values are treated as unset and the
// backoff policy fills in a default.
func parseRetryAfter(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs * float64(time.Second))
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return 0
}

func clientErrorMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "invalid API credentials"
	case http.StatusForbidden:
		return "access forbidden - check API permissions"
	case http.StatusUnprocessableEntity:
		return "validation error"
	default:
		return fmt.Sprintf("client error: %s", http.StatusText(status))
	}
}
