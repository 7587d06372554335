// Package factory builds exchange clients by name.
package factory

import (
	"sync"

	"krexchange/pkg/core"
	"krexchange/pkg/exchange"
	"krexchange/pkg/exchange/bithumb"
	"krexchange/pkg/exchange/coinone"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *exchange.Registry
)

// Default returns the registry holding every built-in exchange.
func Default() *exchange.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = exchange.NewRegistry()
		bithumb.Register(defaultRegistry)
		coinone.Register(defaultRegistry)
	})
	return defaultRegistry
}

// New builds the client registered as kind with the given credentials.
// Empty credentials yield a client limited to public operations.
func New(kind, apiKey, secretKey string, opts ...exchange.ClientOption) (exchange.Exchange, error) {
	config := core.DefaultConfig(kind)
	if apiKey != "" || secretKey != "" {
		config.WithCredentials(&core.Credentials{APIKey: apiKey, SecretKey: secretKey})
	}
	return NewWithConfig(kind, config, opts...)
}

// NewWithConfig builds the client registered as kind from config.
func NewWithConfig(kind string, config *core.Config, opts ...exchange.ClientOption) (exchange.Exchange, error) {
	return Default().New(kind, config, opts...)
}

// Kinds lists the built-in exchanges.
func Kinds() []string {
	return Default().Kinds()
}
