// Package aggregator compares top-of-book prices across exchange clients.
package aggregator

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"

	"krexchange/pkg/core"
	"krexchange/pkg/exchange"
)

// decimalCtx bounds the precision of percentage division.
var decimalCtx = apd.BaseContext.WithPrecision(16)

// Aggregator fans an order book request out to several exchanges.
type Aggregator struct {
	mu         sync.RWMutex
	exchanges  map[string]exchange.Exchange
	logger     zerolog.Logger
	lastUpdate time.Time
}

// NewAggregator creates a new aggregator with no exchanges registered.
func NewAggregator() *Aggregator {
	return NewAggregatorWithLogger(zerolog.Nop())
}

// NewAggregatorWithLogger creates a new aggregator with a custom logger.
func NewAggregatorWithLogger(logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		exchanges: make(map[string]exchange.Exchange),
		logger:    logger,
	}
}

// AddExchange registers ex under its Name.
func (a *Aggregator) AddExchange(ex exchange.Exchange) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.exchanges[ex.Name()] = ex
}

// RemoveExchange unregisters the exchange called name.
func (a *Aggregator) RemoveExchange(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.exchanges, name)
}

// Exchanges returns the names of all registered exchanges in sorted order.
func (a *Aggregator) Exchanges() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.exchanges))
	for name := range a.exchanges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OrderBookResult holds the order book or error from a single exchange.
type OrderBookResult struct {
	Exchange  string          `json:"exchange"`
	OrderBook *core.OrderBook `json:"order_book,omitempty"`
	Error     error           `json:"error,omitempty"`
}

// OK reports whether the result carries a usable order book.
func (r OrderBookResult) OK() bool {
	return r.Error == nil && r.OrderBook != nil && !r.OrderBook.Error
}

// OrderBooks fetches the order book of coin from every exchange concurrently.
// Results are sorted by exchange name.
func (a *Aggregator) OrderBooks(ctx context.Context, coin string) []OrderBookResult {
	a.mu.RLock()
	exchanges := make(map[string]exchange.Exchange, len(a.exchanges))
	maps.Copy(exchanges, a.exchanges)
	a.mu.RUnlock()

	resultChan := make(chan OrderBookResult, len(exchanges))
	var wg sync.WaitGroup

	for name, ex := range exchanges {
		wg.Add(1)
		go func(name string, ex exchange.Exchange) {
			defer wg.Done()

			result := OrderBookResult{Exchange: name}
			if err := ctx.Err(); err != nil {
				result.Error = err
				resultChan <- result
				return
			}

			book, err := ex.OrderBook(ctx, coin)
			if err != nil {
				result.Error = fmt.Errorf("get order book: %w", err)
			} else if book.Error {
				a.logger.Warn().Str("exchange", name).Str("coin", coin).Msg("order book unavailable")
			}
			result.OrderBook = book
			resultChan <- result
		}(name, ex)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]OrderBookResult, 0, len(exchanges))
	for r := range resultChan {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Exchange < results[j].Exchange
	})

	a.mu.Lock()
	a.lastUpdate = time.Now()
	a.mu.Unlock()

	return results
}

// BestPrice represents the best bid and ask prices across all exchanges.
type BestPrice struct {
	Coin        string `json:"coin"`
	Bid         int64  `json:"bid"`
	Ask         int64  `json:"ask"`
	BidExchange string `json:"bid_exchange"`
	AskExchange string `json:"ask_exchange"`
	// Spread is Ask minus Bid; negative when the books cross between exchanges.
	Spread int64 `json:"spread"`
}

// BestPrice finds the highest bid and lowest ask for coin across all exchanges.
func (a *Aggregator) BestPrice(ctx context.Context, coin string) (*BestPrice, error) {
	var best *BestPrice

	for _, r := range a.OrderBooks(ctx, coin) {
		if !r.OK() {
			continue
		}
		book := r.OrderBook
		if best == nil {
			best = &BestPrice{
				Coin:        coin,
				Bid:         book.HighestBid,
				Ask:         book.LowestAsk,
				BidExchange: r.Exchange,
				AskExchange: r.Exchange,
			}
			continue
		}
		if book.HighestBid > best.Bid {
			best.Bid = book.HighestBid
			best.BidExchange = r.Exchange
		}
		if book.LowestAsk < best.Ask {
			best.Ask = book.LowestAsk
			best.AskExchange = r.Exchange
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no valid order book data available for coin: %s", coin)
	}
	best.Spread = best.Ask - best.Bid
	return best, nil
}

// ArbitrageOpportunity is a buy on one exchange's ask and a sell on another's bid.
type ArbitrageOpportunity struct {
	Coin         string `json:"coin"`
	BuyExchange  string `json:"buy_exchange"`
	SellExchange string `json:"sell_exchange"`
	BuyPrice     int64  `json:"buy_price"`
	SellPrice    int64  `json:"sell_price"`
	// SpreadPercent is (SellPrice - BuyPrice) / BuyPrice * 100.
	SpreadPercent apd.Decimal `json:"spread_percent"`
	// NetPercent is SpreadPercent less both exchanges' fee rates.
	NetPercent apd.Decimal `json:"net_percent"`
}

// FindArbitrage returns every ordered exchange pair whose net spread is at
// least minNetPercent, best first.
func (a *Aggregator) FindArbitrage(ctx context.Context, coin string, minNetPercent *apd.Decimal) ([]ArbitrageOpportunity, error) {
	a.mu.RLock()
	fees := make(map[string]*apd.Decimal, len(a.exchanges))
	for name, ex := range a.exchanges {
		fees[name] = ex.FeeRate()
	}
	a.mu.RUnlock()

	valid := make([]OrderBookResult, 0)
	for _, r := range a.OrderBooks(ctx, coin) {
		if r.OK() {
			valid = append(valid, r)
		}
	}
	if len(valid) < 2 {
		return nil, fmt.Errorf("need at least 2 exchanges with valid data for arbitrage detection")
	}

	hundred := apd.New(100, 0)
	opportunities := make([]ArbitrageOpportunity, 0)

	for i, buy := range valid {
		for j, sell := range valid {
			if i == j || buy.OrderBook.LowestAsk <= 0 {
				continue
			}

			buyPrice := apd.New(buy.OrderBook.LowestAsk, 0)
			sellPrice := apd.New(sell.OrderBook.HighestBid, 0)

			var spread, spreadPercent, feePercent, netPercent apd.Decimal
			if _, err := apd.BaseContext.Sub(&spread, sellPrice, buyPrice); err != nil {
				return nil, fmt.Errorf("spread: %w", err)
			}
			if _, err := apd.BaseContext.Mul(&spreadPercent, &spread, hundred); err != nil {
				return nil, fmt.Errorf("spread percent: %w", err)
			}
			if _, err := decimalCtx.Quo(&spreadPercent, &spreadPercent, buyPrice); err != nil {
				return nil, fmt.Errorf("spread percent: %w", err)
			}
			if err := totalFeePercent(&feePercent, fees, buy.Exchange, sell.Exchange); err != nil {
				return nil, err
			}
			if _, err := apd.BaseContext.Sub(&netPercent, &spreadPercent, &feePercent); err != nil {
				return nil, fmt.Errorf("net percent: %w", err)
			}

			if minNetPercent != nil && netPercent.Cmp(minNetPercent) < 0 {
				continue
			}

			opportunities = append(opportunities, ArbitrageOpportunity{
				Coin:          coin,
				BuyExchange:   buy.Exchange,
				SellExchange:  sell.Exchange,
				BuyPrice:      buy.OrderBook.LowestAsk,
				SellPrice:     sell.OrderBook.HighestBid,
				SpreadPercent: spreadPercent,
				NetPercent:    netPercent,
			})
		}
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].NetPercent.Cmp(&opportunities[j].NetPercent) > 0
	})

	return opportunities, nil
}

func totalFeePercent(dst *apd.Decimal, fees map[string]*apd.Decimal, buy, sell string) error {
	dst.SetInt64(0)
	for _, name := range []string{buy, sell} {
		fee, ok := fees[name]
		if !ok {
			// removed while the books were in flight
			continue
		}
		if _, err := apd.BaseContext.Add(dst, dst, fee); err != nil {
			return fmt.Errorf("fee sum: %w", err)
		}
	}
	if _, err := apd.BaseContext.Mul(dst, dst, apd.New(100, 0)); err != nil {
		return fmt.Errorf("fee percent: %w", err)
	}
	return nil
}

// AggregateStats summarises the aggregator's state.
type AggregateStats struct {
	TotalExchanges int       `json:"total_exchanges"`
	LastUpdate     time.Time `json:"last_update"`
}

// GetStats returns the number of tracked exchanges and the time books were
// last gathered.
func (a *Aggregator) GetStats() *AggregateStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return &AggregateStats{
		TotalExchanges: len(a.exchanges),
		LastUpdate:     a.lastUpdate,
	}
}
