package exchange

import (
	"context"

	"github.com/cockroachdb/apd/v3"

	"krexchange/pkg/core"
)

// Exchange is the capability set every exchange client implements.
//
// Operations report exchange-side failures through the Error flag of their
// result and reserve the error return for conditions that signal a bug or a
// protocol mismatch: malformed replies, signing failures and missing
// configuration.
type Exchange interface {
	Name() string

	// FeeRate returns the exchange's fixed trade fee rate.
	FeeRate() *apd.Decimal

	AccountInfo(ctx context.Context, opts ...Option) (*core.AccountInfo, error)
	Balance(ctx context.Context, coin string, opts ...Option) (*core.Balance, error)
	OrderBook(ctx context.Context, coin string, opts ...Option) (*core.OrderBook, error)

	Buy(ctx context.Context, coin string, price, quantity *apd.Decimal, opts ...Option) (*core.OrderResult, error)
	Sell(ctx context.Context, coin string, price, quantity *apd.Decimal, opts ...Option) (*core.OrderResult, error)

	// BuyingQuantityIncludingExchangeFee returns quantity * (1 + FeeRate()).
	BuyingQuantityIncludingExchangeFee(quantity *apd.Decimal) (*apd.Decimal, error)

	Close() error
}
