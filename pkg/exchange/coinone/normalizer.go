package coinone

import (
	"krexchange/pkg/core"
)

// Normalizer maps successful Coinone payloads to uniform results.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeAccountInfo extracts the taker fee of coin from userInfo.feeRate.
func (n *Normalizer) NormalizeAccountInfo(body core.Payload, coin string) (*core.AccountInfo, error) {
	fee, err := body.String("userInfo", "feeRate", coin, "taker")
	if err != nil {
		return nil, err
	}
	return &core.AccountInfo{Fee: fee}, nil
}

// NormalizeBalance extracts the krw and coin objects of the balance reply.
func (n *Normalizer) NormalizeBalance(body core.Payload, coin string) (*core.Balance, error) {
	totalKRW, err := body.String("krw", "balance")
	if err != nil {
		return nil, err
	}
	availableKRW, err := body.String("krw", "avail")
	if err != nil {
		return nil, err
	}
	total, err := body.String(coin, "balance")
	if err != nil {
		return nil, err
	}
	available, err := body.String(coin, "avail")
	if err != nil {
		return nil, err
	}

	return &core.Balance{
		Coin:         coin,
		TotalKRW:     totalKRW,
		AvailableKRW: availableKRW,
		Total:        total,
		Available:    available,
	}, nil
}

// NormalizeOrderBook extracts the best bid and ask. Coinone reports seconds,
// so the timestamp gets "000" appended to read as milliseconds.
func (n *Normalizer) NormalizeOrderBook(body core.Payload) (*core.OrderBook, error) {
	ts, err := body.String("timestamp")
	if err != nil {
		return nil, err
	}
	bid, err := body.Integer("bid", 0, "price")
	if err != nil {
		return nil, err
	}
	ask, err := body.Integer("ask", 0, "price")
	if err != nil {
		return nil, err
	}

	return &core.OrderBook{
		Timestamp:  ts + "000",
		HighestBid: bid,
		LowestAsk:  ask,
	}, nil
}
