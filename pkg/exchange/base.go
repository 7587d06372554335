package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httpClient "krexchange/internal/http"
	"krexchange/internal/ratelimit"
	"krexchange/pkg/core"
)

// Transport sends one request and returns the raw reply.
type Transport interface {
	Do(ctx context.Context, req *core.SignedRequest) (*core.RawResponse, error)
}

// BaseExchange is the exchange-independent half of a client. It signs,
// sends and classifies requests for a Protocol; exchange packages embed it
// and map the classified payloads into result types.
type BaseExchange struct {
	config    *core.Config
	protocol  core.Protocol
	transport Transport
	limiter   *ratelimit.Limiter
	supported map[core.Operation]struct{}
	reporter  FailureReporter
	logger    zerolog.Logger
	closer    func() error
}

var errNoResponse = errors.New("transport returned no response")

// NewBase validates config and wires the transport for protocol. The client
// keeps its own copy of config, so later changes by the caller do not reach it.
func NewBase(config *core.Config, protocol core.Protocol, settings *Settings) (*BaseExchange, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	config = config.Clone()

	b := &BaseExchange{
		config:    config,
		protocol:  protocol,
		transport: settings.Transport,
		supported: make(map[core.Operation]struct{}),
		reporter:  settings.Reporter,
		logger:    settings.Logger.With().Str("exchange", protocol.Name()).Logger(),
		closer:    func() error { return nil },
	}
	for _, op := range protocol.SupportedOperations() {
		b.supported[op] = struct{}{}
	}

	if b.transport == nil {
		client, err := httpClient.NewClient(&httpClient.Config{
			BaseURL: protocol.BaseURL(),
			Timeout: config.Timeout,
			Logger:  b.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create http client: %w", err)
		}
		b.transport = client
		b.closer = client.Close
	}

	switch {
	case config.RateLimitRequests > 0:
		b.limiter = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	case config.VenueRateLimit:
		limits := protocol.RateLimits()
		b.limiter = ratelimit.NewWithBurst(limits.RequestsPerSecond, limits.Burst)
	}

	return b, nil
}

// Name returns the exchange identifier.
func (b *BaseExchange) Name() string {
	return b.protocol.Name()
}

// FeeRate returns the exchange's fixed trade fee rate.
func (b *BaseExchange) FeeRate() *apd.Decimal {
	return b.protocol.FeeRate()
}

// BuyingQuantityIncludingExchangeFee returns quantity * (1 + FeeRate()).
func (b *BaseExchange) BuyingQuantityIncludingExchangeFee(quantity *apd.Decimal) (*apd.Decimal, error) {
	return core.QuantityIncludingFee(quantity, b.protocol.FeeRate())
}

// Close releases the transport.
func (b *BaseExchange) Close() error {
	return b.closer()
}

// Logger returns the client's logger.
func (b *BaseExchange) Logger() zerolog.Logger {
	return b.logger
}

// Public sends an unsigned GET with query-encoded parameters.
func (b *BaseExchange) Public(ctx context.Context, op core.Operation, endpoint string, query core.Params) (*core.NormalizedResult, error) {
	if err := b.checkSupported(op); err != nil {
		return nil, err
	}
	return b.execute(ctx, op, core.NewPublicRequest(endpoint, query))
}

// Private signs params for endpoint with the client's credentials and sends them.
func (b *BaseExchange) Private(ctx context.Context, op core.Operation, endpoint string, params core.Params) (*core.NormalizedResult, error) {
	if err := b.checkSupported(op); err != nil {
		return nil, err
	}
	if !b.config.HasCredentials() {
		return nil, core.NewExchangeError(b.Name(), core.ErrorTypeConfiguration, 0,
			fmt.Sprintf("%s requires credentials", op)).WithCode(core.ErrCodeNoCredentials).Wrap(core.ErrNoCredentials)
	}

	req, err := b.protocol.Sign(*b.config.Credentials, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	return b.execute(ctx, op, req)
}

func (b *BaseExchange) checkSupported(op core.Operation) error {
	if _, ok := b.supported[op]; ok {
		return nil
	}
	return core.NewExchangeError(b.Name(), core.ErrorTypeConfiguration, 0,
		fmt.Sprintf("%s is not supported", op)).WithCode(core.ErrCodeUnsupported)
}

func (b *BaseExchange) execute(ctx context.Context, op core.Operation, req *core.SignedRequest) (*core.NormalizedResult, error) {
	requestID := uuid.NewString()
	logger := b.logger.With().
		Str("op", op.String()).
		Str("request_id", requestID).
		Bool("signed", req.IsSigned()).
		Logger()

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	resp, err := b.transport.Do(ctx, req)
	if err == nil && resp == nil {
		err = errNoResponse
	}
	if err != nil {
		logger.Warn().Err(err).Str("endpoint", req.Endpoint).Msg("transport failure")
		res := core.Failure(core.ErrorTypeTransport, 0, nil)
		b.reportIfOrder(ctx, op, requestID, res)
		return res, nil
	}

	res, err := core.Normalize(b.Name(), resp, b.protocol.IsError)
	if err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("malformed response")
		return nil, err
	}

	if !res.OK() {
		logger.Warn().
			Str("reason", res.Reason.String()).
			Int("status", res.StatusCode).
			Msg("request failed")
		b.reportIfOrder(ctx, op, requestID, res)
		return res, nil
	}

	logger.Debug().Int("status", res.StatusCode).Msg("request succeeded")
	return res, nil
}

func (b *BaseExchange) reportIfOrder(ctx context.Context, op core.Operation, requestID string, res *core.NormalizedResult) {
	if !op.IsOrder() || b.reporter == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("op", op.String()).
				Str("request_id", requestID).
				Interface("panic", r).
				Msg("failure reporter panicked")
		}
	}()

	b.reporter.ReportFailure(ctx, &OrderFailure{
		Exchange:   b.Name(),
		Operation:  op,
		Reason:     res.Reason,
		StatusCode: res.StatusCode,
		Body:       res.Body,
		RequestID:  requestID,
	})
}

// MappingError reports a success payload that lacks a field the result needs.
func (b *BaseExchange) MappingError(op core.Operation, err error) error {
	return core.NewExchangeError(b.Name(), core.ErrorTypeMalformedResponse, 200,
		fmt.Sprintf("map %s: %v", op, err)).WithCode(core.ErrCodeMissingField).Wrap(err)
}

// ArgumentError reports an operation called without an argument it requires.
func (b *BaseExchange) ArgumentError(op core.Operation, name string) error {
	return core.NewExchangeError(b.Name(), core.ErrorTypeConfiguration, 0,
		fmt.Sprintf("%s requires %s", op, name)).WithCode(core.ErrCodeMissingParam)
}
