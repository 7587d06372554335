// Package order builds limit orders and places them on an exchange.
package order

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"krexchange/pkg/core"
)

// Order is a validated limit order.
type Order struct {
	Coin     string
	Side     core.Operation
	Price    apd.Decimal
	Quantity apd.Decimal
	// IncludeFee grows a buy's quantity by the exchange fee so the filled
	// amount after fees matches Quantity.
	IncludeFee bool
}

// Builder provides a fluent interface for constructing orders.
// It keeps the first error and reports it on Build.
//
// Example:
//
//	o, err := order.NewBuilder("BTC").
//	    Buy().
//	    Price("50000000").
//	    Quantity("0.001").
//	    IncludeFee().
//	    Build()
type Builder struct {
	order *Order
	err   error
}

// NewBuilder creates a new order builder for coin.
func NewBuilder(coin string) *Builder {
	return &Builder{order: &Order{Coin: coin}}
}

// Buy makes the order a limit buy.
func (b *Builder) Buy() *Builder {
	if b.err == nil {
		b.order.Side = core.OpBuy
	}
	return b
}

// Sell makes the order a limit sell.
func (b *Builder) Sell() *Builder {
	if b.err == nil {
		b.order.Side = core.OpSell
	}
	return b
}

// Price sets the price from its decimal text.
func (b *Builder) Price(price string) *Builder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.order.Price.SetString(price); err != nil {
		b.err = fmt.Errorf("parse price: %w", err)
	}
	return b
}

// PriceDecimal sets the price.
func (b *Builder) PriceDecimal(price *apd.Decimal) *Builder {
	if b.err == nil {
		b.order.Price.Set(price)
	}
	return b
}

// Quantity sets the quantity from its decimal text.
func (b *Builder) Quantity(qty string) *Builder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.order.Quantity.SetString(qty); err != nil {
		b.err = fmt.Errorf("parse quantity: %w", err)
	}
	return b
}

// QuantityDecimal sets the quantity.
func (b *Builder) QuantityDecimal(qty *apd.Decimal) *Builder {
	if b.err == nil {
		b.order.Quantity.Set(qty)
	}
	return b
}

// IncludeFee grows a buy's quantity by the exchange fee when placed.
func (b *Builder) IncludeFee() *Builder {
	if b.err == nil {
		b.order.IncludeFee = true
	}
	return b
}

// Build validates and returns the constructed order.
func (b *Builder) Build() (*Order, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := validateOrder(b.order); err != nil {
		return nil, err
	}
	return b.order, nil
}

func validateOrder(o *Order) error {
	if o.Coin == "" {
		return fmt.Errorf("coin is required")
	}
	if !o.Side.IsOrder() {
		return fmt.Errorf("invalid order side")
	}
	if o.Price.IsZero() || o.Price.Negative {
		return fmt.Errorf("price must be positive")
	}
	if o.Quantity.IsZero() || o.Quantity.Negative {
		return fmt.Errorf("quantity must be positive")
	}
	if o.IncludeFee && o.Side != core.OpBuy {
		return fmt.Errorf("fee inclusion applies to buy orders only")
	}
	return nil
}
