package coinone

import (
	"context"

	"github.com/cockroachdb/apd/v3"

	"krexchange/pkg/core"
	"krexchange/pkg/exchange"
)

// Name is the kind under which Coinone registers.
const Name = "coinone"

var _ exchange.Exchange = (*CoinoneExchange)(nil)

// CoinoneExchange implements the Exchange interface for Coinone.
type CoinoneExchange struct {
	*exchange.BaseExchange
	protocol   *Protocol
	normalizer *Normalizer
}

// New creates a new CoinoneExchange instance with the given configuration and options.
func New(config *core.Config, opts ...exchange.ClientOption) (*CoinoneExchange, error) {
	settings := exchange.ApplyClientOptions(config, opts...)
	protocol := NewProtocol(settings.Nonce)

	base, err := exchange.NewBase(config, protocol, settings)
	if err != nil {
		return nil, err
	}

	return &CoinoneExchange{
		BaseExchange: base,
		protocol:     protocol,
		normalizer:   NewNormalizer(),
	}, nil
}

// Register adds the Coinone constructor to r.
func Register(r *exchange.Registry) {
	r.Register(Name, func(config *core.Config, opts ...exchange.ClientOption) (exchange.Exchange, error) {
		return New(config, opts...)
	})
}

// AccountInfo returns the taker fee of the coin given with exchange.WithCoin.
// Coinone keys fee rates by coin, so calling it without one is a
// configuration error.
func (e *CoinoneExchange) AccountInfo(ctx context.Context, opts ...exchange.Option) (*core.AccountInfo, error) {
	o := exchange.ApplyOptions(opts...)
	if o.Coin == "" {
		return nil, e.ArgumentError(core.OpAccountInfo, "coin option")
	}

	res, err := e.Private(ctx, core.OpAccountInfo, endpointUserInfo, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return &core.AccountInfo{Error: true}, nil
	}

	info, err := e.normalizer.NormalizeAccountInfo(res.Payload, o.Coin)
	if err != nil {
		return nil, e.MappingError(core.OpAccountInfo, err)
	}
	return info, nil
}

// Balance returns the KRW and coin balances.
func (e *CoinoneExchange) Balance(ctx context.Context, coin string, _ ...exchange.Option) (*core.Balance, error) {
	if coin == "" {
		return nil, e.ArgumentError(core.OpBalance, "coin")
	}

	res, err := e.Private(ctx, core.OpBalance, endpointBalance, nil)
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
func (e *CoinoneExchange) OrderBook(ctx context.Context, coin string, _ ...exchange.Option) (*core.OrderBook, error) {
	if coin == "" {
		return nil, e.ArgumentError(core.OpOrderBook, "coin")
	}

	res, err := e.Public(ctx, core.OpOrderBook, endpointOrderBook, core.NewParams("currency", coin))
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

// Buy places a limit buy order.
func (e *CoinoneExchange) Buy(ctx context.Context, coin string, price, quantity *apd.Decimal, _ ...exchange.Option) (*core.OrderResult, error) {
	return e.place(ctx, core.OpBuy, endpointLimitBuy, coin, price, quantity)
}

// Sell places a limit sell order.
func (e *CoinoneExchange) Sell(ctx context.Context, coin string, price, quantity *apd.Decimal, _ ...exchange.Option) (*core.OrderResult, error) {
	return e.place(ctx, core.OpSell, endpointLimitSell, coin, price, quantity)
}

func (e *CoinoneExchange) place(ctx context.Context, op core.Operation, endpoint, coin string, price, quantity *apd.Decimal) (*core.OrderResult, error) {
	switch {
	case coin == "":
		return nil, e.ArgumentError(op, "coin")
	case price == nil:
		return nil, e.ArgumentError(op, "price")
	case quantity == nil:
		return nil, e.ArgumentError(op, "quantity")
	}

	params := core.NewParams(
		"currency", coin,
		"qty", quantity,
		"price", price,
	)

	res, err := e.Private(ctx, op, endpoint, params)
	if err != nil {
		return nil, err
	}
	return &core.OrderResult{Error: !res.OK()}, nil
}
