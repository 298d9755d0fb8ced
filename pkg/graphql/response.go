package graphql

import (
	"encoding/json"
	"fmt"

	"github.com/PKwhiting/shopify-go/pkg/errors"
)

// placeholderMessage replaces null or missing upstream error messages.
// Shopify has been observed to send errors with a null message field.
const placeholderMessage = "Unknown GraphQL error"

// Response is the standard GraphQL envelope. Data and Errors may both
// be populated; both empty is degenerate but valid.
type Response struct {
	Data   map[string]interface{} `json:"data"`
	Errors []ResponseError        `json:"errors"`
}

// ResponseError is one entry of the top-level errors array.
type ResponseError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// UnmarshalJSON normalizes a null/missing message to a placeholder so a
// nil message never reaches the caller.
func (e *ResponseError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message    *string                `json:"message"`
		Path       []interface{}          `json:"path"`
		Extensions map[string]interface{} `json:"extensions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Path = raw.Path
	e.Extensions = raw.Extensions
	if raw.Message == nil || *raw.Message == "" {
		e.Message = placeholderMessage
	} else {
		e.Message = *raw.Message
	}
	return nil
}

// Code returns extensions.code, or "" when absent.
func (e *ResponseError) Code() string {
	if e.Extensions == nil {
		return ""
	}
	code, _ := e.Extensions["code"].(string)
	return code
}

// HasErrors reports whether the errors array is non-empty.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages joins all error messages for display.
func (r *Response) ErrorMessages() string {
	msg := ""
	for i, e := range r.Errors {
		if i > 0 {
			msg += "; "
		}
		msg += e.Message
	}
	return msg
}

// ParseResponse decodes a raw body into a Response. A body that isn't
// valid JSON yields a malformed APIError carrying a snippet of the raw
// bytes, never silently swallowed.
func ParseResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, (&errors.APIError{
			Kind:        errors.KindMalformed,
			Retryable:   false,
			Message:     fmt.Sprintf("response is not valid JSON: %v", err),
			BodySnippet: snippet(body),
		}).WithCause(err)
	}
	return &resp, nil
}

// snippet bounds how much of a bad body we keep for diagnostics.
func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
