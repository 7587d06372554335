package exchange

import (
	"github.com/rs/zerolog"

	"krexchange/internal/nonce"
	"krexchange/pkg/core"
)

// Option configures a single operation call.
type Option func(*Options)

// Options holds per-call settings.
type Options struct {
	// Coin selects the coin whose fee rate account info reports, for
	// exchanges that key fees by coin.
	Coin string
}

// WithCoin sets the coin an operation refers to when its signature does not name one.
func WithCoin(coin string) Option {
	return func(o *Options) {
		o.Coin = coin
	}
}

// ApplyOptions resolves per-call options.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ClientOption configures an exchange client at construction.
type ClientOption func(*Settings)

// Settings holds construction-time collaborators of a client.
type Settings struct {
	Logger    zerolog.Logger
	Reporter  FailureReporter
	Nonce     nonce.Source
	Transport Transport
}

// WithLogger sets the logger for the client.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(s *Settings) {
		s.Logger = l
	}
}

// WithReporter sets the sink that receives buy/sell failures.
func WithReporter(r FailureReporter) ClientOption {
	return func(s *Settings) {
		s.Reporter = r
	}
}

// WithNonceSource overrides the nonce source chosen from the config.
func WithNonceSource(src nonce.Source) ClientOption {
	return func(s *Settings) {
		s.Nonce = src
	}
}

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) ClientOption {
	return func(s *Settings) {
		s.Transport = t
	}
}

// ApplyClientOptions resolves the settings for a client built from config.
// Events below config.LogLevel are dropped; a logger that is already stricter
// is left alone. Unless overridden, the nonce
// source is the wall clock, or when config.HardenedNonce is set the monotonic
// source shared by every client of the same API key. Order failures are
// reported to the logger.
func ApplyClientOptions(config *core.Config, opts ...ClientOption) *Settings {
	s := &Settings{Logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if config.LogLevel != "" {
		if level, err := zerolog.ParseLevel(config.LogLevel); err == nil && level > s.Logger.GetLevel() {
			s.Logger = s.Logger.Level(level)
		}
	}
	if s.Nonce == nil {
		switch {
		case config.HardenedNonce && config.HasCredentials():
			s.Nonce = nonce.ForKey(config.Credentials.APIKey)
		case config.HardenedNonce:
			s.Nonce = nonce.NewMonotonic()
		default:
			s.Nonce = nonce.WallClock{}
		}
	}
	if s.Reporter == nil {
		s.Reporter = NewLogReporter(s.Logger)
	}
	return s
}
