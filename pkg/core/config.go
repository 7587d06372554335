package core

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Credentials holds API authentication credentials for an exchange.
// A client owns its credentials exclusively and never mutates them.
type Credentials struct {
	// APIKey is the public API key identifier.
	APIKey string `json:"api_key" validate:"required"`
	// SecretKey is the private key used for signing requests.
	SecretKey string `json:"secret_key" validate:"required"`
}

// String masks the key material so credentials never leak into logs.
func (c Credentials) String() string {
	return "Credentials{APIKey:" + maskKey(c.APIKey) + "}"
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// Config contains the options for a single exchange client.
// Base URLs and fee rates are fixed by each exchange package and are not configurable here.
type Config struct {
	Exchange    string       `json:"exchange" validate:"required"`
	Credentials *Credentials `json:"credentials,omitempty" validate:"omitempty"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	// RateLimitRequests enables client-side pacing when positive.
	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=0"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=0"`
	// VenueRateLimit paces with the exchange's published limits when no
	// explicit rate limit is set.
	VenueRateLimit bool `json:"venue_rate_limit"`

	// HardenedNonce replaces the wall-clock nonce with a strictly increasing one.
	HardenedNonce bool `json:"hardened_nonce"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with defaults for the specified exchange:
// 10s timeout, no client-side rate limiting, wall-clock nonces.
func DefaultConfig(exchange string) *Config {
	return &Config{
		Exchange: exchange,
		Timeout:  10 * time.Second,
		LogLevel: "info",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RateLimitRequests > 0 && c.RateLimitPeriod <= 0 {
		return errors.New("RateLimitPeriod must be positive when rate limiting is enabled")
	}
	return nil
}

// Clone returns a deep copy of c. Clients keep a clone so later edits to the
// caller's config, including its credentials, do not reach them.
func (c *Config) Clone() *Config {
	out := *c
	if c.Credentials != nil {
		creds := *c.Credentials
		out.Credentials = &creds
	}
	return &out
}

// HasCredentials reports whether both keys are present.
func (c *Config) HasCredentials() bool {
	return c.Credentials != nil && c.Credentials.APIKey != "" && c.Credentials.SecretKey != ""
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}

// WithVenueRateLimit enables pacing at the exchange's published limits and returns the config for chaining.
func (c *Config) WithVenueRateLimit(enabled bool) *Config {
	c.VenueRateLimit = enabled
	return c
}

// WithHardenedNonce selects the monotonic nonce source and returns the config for chaining.
func (c *Config) WithHardenedNonce(hardened bool) *Config {
	c.HardenedNonce = hardened
	return c
}
