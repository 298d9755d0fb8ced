package auth

import (
	"fmt"
	"net/http"
)

var (
	ErrMissingCredentials = fmt.Errorf("missing credentials")
)

// DefaultHeaderName is the header Shopify expects the Admin token in.
const DefaultHeaderName = "X-Shopify-Access-Token"

// Handler defines the interface for auth handlers
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// AccessTokenAuth implements the Handler interface for Shopify Admin API
// access tokens. The token travels in the X-Shopify-Access-Token header.
type AccessTokenAuth struct {
	HeaderName string // defaults to DefaultHeaderName when empty
	Token      string // the actual access token value
}

// NewAccessTokenAuth creates a new access token authentication handler
func NewAccessTokenAuth(token string) *AccessTokenAuth {
	return &AccessTokenAuth{
		HeaderName: DefaultHeaderName,
		Token:      token,
	}
}

// ApplyAuth adds the access token to the request headers
func (a *AccessTokenAuth) ApplyAuth(req *http.Request) error {
	// check that we have a value to use
	if a.Token == "" {
		return fmt.Errorf("%w: access token is required", ErrMissingCredentials)
	}

	header := a.HeaderName
	if header == "" {
		header = DefaultHeaderName
	}
	req.Header.Set(header, a.Token)
	return nil
}

// String returns a string representation of this auth method for testing
func (a *AccessTokenAuth) String() string {
	// There is no need to actually put the actual token
	return "AccessTokenAuth(token: [REDACTED])"
}
