package order

import (
	"context"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"krexchange/pkg/core"
	"krexchange/pkg/exchange"
)

// Place sends o to ex. A buy built with IncludeFee is sent with its
// quantity grown by the exchange's fee rate.
func Place(ctx context.Context, ex exchange.Exchange, o *Order, opts ...exchange.Option) (*core.OrderResult, error) {
	if err := validateOrder(o); err != nil {
		return nil, err
	}

	qty := new(apd.Decimal).Set(&o.Quantity)
	if o.IncludeFee {
		var err error
		qty, err = ex.BuyingQuantityIncludingExchangeFee(qty)
		if err != nil {
			return nil, fmt.Errorf("quantity including fee: %w", err)
		}
	}
	price := new(apd.Decimal).Set(&o.Price)

	if o.Side == core.OpBuy {
		return ex.Buy(ctx, o.Coin, price, qty, opts...)
	}
	return ex.Sell(ctx, o.Coin, price, qty, opts...)
}
