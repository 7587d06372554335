package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krexchange/pkg/core"
	"krexchange/pkg/exchange"
)

type stubExchange struct {
	name  string
	fee   string
	book  *core.OrderBook
	err   error
	mu    sync.Mutex
	coins []string
}

func (s *stubExchange) Name() string          { return s.name }
func (s *stubExchange) FeeRate() *apd.Decimal { return core.MustFeeRate(s.fee) }
func (s *stubExchange) Close() error          { return nil }

func (s *stubExchange) AccountInfo(context.Context, ...exchange.Option) (*core.AccountInfo, error) {
	return &core.AccountInfo{Error: true}, nil
}

func (s *stubExchange) Balance(_ context.Context, coin string, _ ...exchange.Option) (*core.Balance, error) {
	return &core.Balance{Error: true, Coin: coin}, nil
}

func (s *stubExchange) OrderBook(_ context.Context, coin string, _ ...exchange.Option) (*core.OrderBook, error) {
	s.mu.Lock()
	s.coins = append(s.coins, coin)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.book, nil
}

func (s *stubExchange) Buy(context.Context, string, *apd.Decimal, *apd.Decimal, ...exchange.Option) (*core.OrderResult, error) {
	return &core.OrderResult{Error: true}, nil
}

func (s *stubExchange) Sell(context.Context, string, *apd.Decimal, *apd.Decimal, ...exchange.Option) (*core.OrderResult, error) {
	return &core.OrderResult{Error: true}, nil
}

func (s *stubExchange) BuyingQuantityIncludingExchangeFee(q *apd.Decimal) (*apd.Decimal, error) {
	return core.QuantityIncludingFee(q, s.FeeRate())
}

func book(bid, ask int64) *core.OrderBook {
	return &core.OrderBook{Timestamp: "1620000000000", HighestBid: bid, LowestAsk: ask}
}

func newTestAggregator(exchanges ...*stubExchange) *Aggregator {
	agg := NewAggregator()
	for _, ex := range exchanges {
		agg.AddExchange(ex)
	}
	return agg
}

func dec(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestAggregator_AddRemoveExchange(t *testing.T) {
	agg := newTestAggregator(
		&stubExchange{name: "coinone", fee: "0.001"},
		&stubExchange{name: "bithumb", fee: "0.0015"},
	)
	assert.Equal(t, []string{"bithumb", "coinone"}, agg.Exchanges())

	agg.RemoveExchange("coinone")
	assert.Equal(t, []string{"bithumb"}, agg.Exchanges())
	assert.Equal(t, 1, agg.GetStats().TotalExchanges)
}

func TestAggregator_OrderBooks(t *testing.T) {
	bithumb := &stubExchange{name: "bithumb", fee: "0.0015", book: book(100, 105)}
	coinone := &stubExchange{name: "coinone", fee: "0.001", err: errors.New("boom")}
	agg := newTestAggregator(bithumb, coinone)

	results := agg.OrderBooks(context.Background(), "btc")
	require.Len(t, results, 2)

	assert.Equal(t, "bithumb", results[0].Exchange)
	assert.True(t, results[0].OK())
	assert.Equal(t, int64(105), results[0].OrderBook.LowestAsk)

	assert.Equal(t, "coinone", results[1].Exchange)
	assert.False(t, results[1].OK())
	assert.ErrorContains(t, results[1].Error, "boom")

	assert.Equal(t, []string{"btc"}, bithumb.coins)
	assert.False(t, agg.GetStats().LastUpdate.IsZero())
}

func TestAggregator_OrderBooks_CanceledContext(t *testing.T) {
	ex := &stubExchange{name: "bithumb", fee: "0.0015", book: book(1, 2)}
	agg := newTestAggregator(ex)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := agg.OrderBooks(ctx, "btc")
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Error, context.Canceled)
	assert.Empty(t, ex.coins)
}

func TestAggregator_BestPrice(t *testing.T) {
	agg := newTestAggregator(
		&stubExchange{name: "bithumb", fee: "0.0015", book: book(100, 105)},
		&stubExchange{name: "coinone", fee: "0.001", book: book(103, 108)},
		&stubExchange{name: "down", fee: "0.001", book: &core.OrderBook{Error: true}},
	)

	best, err := agg.BestPrice(context.Background(), "btc")
	require.NoError(t, err)

	assert.Equal(t, &BestPrice{
		Coin:        "btc",
		Bid:         103,
		Ask:         105,
		BidExchange: "coinone",
		AskExchange: "bithumb",
		Spread:      2,
	}, best)
}

func TestAggregator_BestPrice_NoData(t *testing.T) {
	agg := newTestAggregator(&stubExchange{name: "down", fee: "0.001", book: &core.OrderBook{Error: true}})

	best, err := agg.BestPrice(context.Background(), "btc")
	require.Error(t, err)
	assert.Nil(t, best)
}

func TestAggregator_FindArbitrage(t *testing.T) {
	agg := newTestAggregator(
		&stubExchange{name: "bithumb", fee: "0.0015", book: book(99, 100)},
		&stubExchange{name: "coinone", fee: "0.001", book: book(105, 106)},
	)

	opps, err := agg.FindArbitrage(context.Background(), "btc", nil)
	require.NoError(t, err)
	require.Len(t, opps, 2)

	top := opps[0]
	assert.Equal(t, "bithumb", top.BuyExchange)
	assert.Equal(t, "coinone", top.SellExchange)
	assert.Equal(t, int64(100), top.BuyPrice)
	assert.Equal(t, int64(105), top.SellPrice)
	assert.Zero(t, top.SpreadPercent.Cmp(dec(t, "5")), "spread %s", top.SpreadPercent.String())
	assert.Zero(t, top.NetPercent.Cmp(dec(t, "4.75")), "net %s", top.NetPercent.String())

	assert.Equal(t, "coinone", opps[1].BuyExchange)
	assert.True(t, opps[1].NetPercent.Negative)
}

func TestAggregator_FindArbitrage_MinNetPercent(t *testing.T) {
	agg := newTestAggregator(
		&stubExchange{name: "bithumb", fee: "0.0015", book: book(99, 100)},
		&stubExchange{name: "coinone", fee: "0.001", book: book(105, 106)},
	)

	opps, err := agg.FindArbitrage(context.Background(), "btc", dec(t, "5"))
	require.NoError(t, err)
	assert.Empty(t, opps)

	opps, err = agg.FindArbitrage(context.Background(), "btc", dec(t, "1"))
	require.NoError(t, err)
	require.Len(t, opps, 1)
	assert.Equal(t, "bithumb", opps[0].BuyExchange)
}

func TestAggregator_FindArbitrage_NeedsTwoExchanges(t *testing.T) {
	agg := newTestAggregator(
		&stubExchange{name: "bithumb", fee: "0.0015", book: book(99, 100)},
		&stubExchange{name: "coinone", fee: "0.001", err: errors.New("down")},
	)

	_, err := agg.FindArbitrage(context.Background(), "btc", nil)
	require.Error(t, err)
}
