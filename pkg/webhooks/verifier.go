// Package webhooks authenticates and dispatches inbound Shopify
// webhooks: HMAC signature verification plus a thread-safe registry of
// per-topic handlers.
package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SignatureHeader is where Shopify puts the payload HMAC.
const SignatureHeader = "X-Shopify-Hmac-Sha256"

// TopicHeader carries the event topic, e.g. "orders/create".
const TopicHeader = "X-Shopify-Topic"

// VerifySignature checks that signature is the base64 HMAC-SHA256 of
// payload under secret. Comparison is constant time; a forged or
// malformed signature yields false, never a panic. A "sha256=" prefix
// on the header value is tolerated.
func VerifySignature(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	signature = strings.TrimPrefix(signature, "sha256=")

	provided, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), provided)
}

// ComputeSignature returns the base64 HMAC-SHA256 of payload under
// secret, what a legitimate sender would put in the header. Exposed
// for tests and for signing outbound callbacks.
func ComputeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
