package bithumb

import (
	"context"

	"github.com/cockroachdb/apd/v3"

	"krexchange/pkg/core"
	"krexchange/pkg/exchange"
)

// Name is the kind under which Bithumb registers.
const Name = "bithumb"

var _ exchange.Exchange = (*BithumbExchange)(nil)

// BithumbExchange implements the Exchange interface for Bithumb.
type BithumbExchange struct {
	*exchange.BaseExchange
	protocol   *Protocol
	normalizer *Normalizer
}

// New creates a new BithumbExchange instance with the given configuration and options.
func New(config *core.Config, opts ...exchange.ClientOption) (*BithumbExchange, error) {
	settings := exchange.ApplyClientOptions(config, opts...)
	protocol := NewProtocol(settings.Nonce)

	base, err := exchange.NewBase(config, protocol, settings)
	if err != nil {
		return nil, err
	}

	return &BithumbExchange{
		BaseExchange: base,
		protocol:     protocol,
		normalizer:   NewNormalizer(),
	}, nil
}

// Register adds the Bithumb constructor to r.
func Register(r *exchange.Registry) {
	r.Register(Name, func(config *core.Config, opts ...exchange.ClientOption) (exchange.Exchange, error) {
		return New(config, opts...)
	})
}

// AccountInfo returns the account's trade fee.
func (e *BithumbExchange) AccountInfo(ctx context.Context, _ ...exchange.Option) (*core.AccountInfo, error) {
	res, err := e.Private(ctx, core.OpAccountInfo, endpointAccount, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return &core.AccountInfo{Error: true}, nil
	}

	info, err := e.normalizer.NormalizeAccountInfo(res.Payload)
	if err != nil {
		return nil, e.MappingError(core.OpAccountInfo, err)
	}
	return info, nil
}

// Balance returns the KRW and coin balances.
func (e *BithumbExchange) Balance(ctx context.Context, coin string, _ ...exchange.Option) (*core.Balance, error) {
	if coin == "" {
		return nil, e.ArgumentError(core.OpBalance, "coin")
	}

	res, err := e.Private(ctx, core.OpBalance, endpointBalance, core.NewParams("currency", coin))
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return &core.Balance{Error: true, Coin: coin}, nil
	}

	bal, err := e.normalizer.NormalizeBalance(res.Payload, coin)
	if err != nil {
		return nil, e.MappingError(core.OpBalance, err)
	}
	return bal, nil
}

// OrderBook returns the best bid and ask for coin. It needs no credentials.
func (e *BithumbExchange) OrderBook(ctx context.Context, coin string, _ ...exchange.Option) (*core.OrderBook, error) {
	if coin == "" {
		return nil, e.ArgumentError(core.OpOrderBook, "coin")
	}

	res, err := e.Public(ctx, core.OpOrderBook, endpointOrderBook+coin, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return &core.OrderBook{Error: true}, nil
	}

	book, err := e.normalizer.NormalizeOrderBook(res.Payload)
	if err != nil {
		return nil, e.MappingError(core.OpOrderBook, err)
	}
	return book, nil
}

// Buy places a limit bid.
func (e *BithumbExchange) Buy(ctx context.Context, coin string, price, quantity *apd.Decimal, _ ...exchange.Option) (*core.OrderResult, error) {
	return e.place(ctx, core.OpBuy, "bid", coin, price, quantity)
}

// Sell places a limit ask.
func (e *BithumbExchange) Sell(ctx context.Context, coin string, price, quantity *apd.Decimal, _ ...exchange.Option) (*core.OrderResult, error) {
	return e.place(ctx, core.OpSell, "ask", coin, price, quantity)
}

func (e *BithumbExchange) place(ctx context.Context, op core.Operation, side, coin string, price, quantity *apd.Decimal) (*core.OrderResult, error) {
	switch {
	case coin == "":
		return nil, e.ArgumentError(op, "coin")
	case price == nil:
		return nil, e.ArgumentError(op, "price")
	case quantity == nil:
		return nil, e.ArgumentError(op, "quantity")
	}

	params := core.NewParams(
		"order_currency", coin,
		"units", quantity,
		"price", price,
		"type", side,
	)

	res, err := e.Private(ctx, op, endpointPlace, params)
	if err != nil {
		return nil, err
	}
	return &core.OrderResult{Error: !res.OK()}, nil
}
