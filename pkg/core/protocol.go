package core

import (
	"github.com/cockroachdb/apd/v3"
)

// RateLimitConfig defines rate limiting parameters for an exchange protocol.
type RateLimitConfig struct {
	// RequestsPerSecond is the maximum general requests per second.
	RequestsPerSecond int `json:"requests_per_second"`
	// Burst allows temporary exceeding of rate limits.
	Burst int `json:"burst"`
}

// Signer turns an endpoint and its parameters into a signed request.
// Given the same nonce, a signer is deterministic.
type Signer interface {
	Sign(creds Credentials, endpoint string, params Params) (*SignedRequest, error)
}

// Protocol defines the exchange-specific half of a client: where requests go,
// how they are signed and how a reply is judged.
type Protocol interface {
	Signer

	// Name returns the exchange identifier (e.g., "bithumb", "coinone").
	Name() string

	// BaseURL returns the fixed API base URL.
	BaseURL() string

	// FeeRate returns the exchange's trade fee rate. The value is a constant
	// of the exchange type; callers receive a fresh copy.
	FeeRate() *apd.Decimal

	// IsError is the exchange's success discriminator for parsed 200 bodies.
	IsError(body Payload) bool

	// SupportedOperations returns the list of operations this protocol supports.
	SupportedOperations() []Operation

	// RateLimits returns the documented public rate limit of the exchange.
	RateLimits() RateLimitConfig
}
