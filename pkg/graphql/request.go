// Package graphql holds the wire types for the Admin GraphQL endpoint:
// the request builder, the response envelope, and the error classifier
// that decides whether a failure is worth retrying.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/PKwhiting/shopify-go/pkg/auth"
)

// Request is one GraphQL operation ready to send. It is never mutated
// after Build, so a single Request is safe to reuse across goroutines.
type Request struct {
	Endpoint  string
	Query     string
	Variables map[string]interface{}
	Headers   map[string]string
}

// Builder constructs GraphQL requests.
type Builder struct {
	Endpoint    string
	Headers     map[string]string
	AuthHandler auth.Handler
}

// NewBuilder sets up a GraphQL Builder.
// Endpoint is the full URL of the graphql.json endpoint.
func NewBuilder(endpoint string, headers map[string]string, authHandler auth.Handler) *Builder {
	return &Builder{
		Endpoint:    endpoint,
		Headers:     headers,
		AuthHandler: authHandler,
	}
}

// NewRequest snapshots the builder state into an immutable Request.
// Variables and headers are copied so later builder mutation can't leak in.
func (b *Builder) NewRequest(query string, variables map[string]interface{}) *Request {
	vars := make(map[string]interface{}, len(variables))
	for k, v := range variables {
		vars[k] = v
	}
	headers := make(map[string]string, len(b.Headers))
	for k, v := range b.Headers {
		headers[k] = v
	}
	return &Request{
		Endpoint:  b.Endpoint,
		Query:     query,
		Variables: vars,
		Headers:   headers,
	}
}

// Build creates the *http.Request with the JSON envelope body.
func (b *Builder) Build(ctx context.Context, r *Request) (*http.Request, error) {
	variables := r.Variables
	if variables == nil {
		variables = map[string]interface{}{}
	}
	body := map[string]interface{}{
		"query":     r.Query,
		"variables": variables,
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}
