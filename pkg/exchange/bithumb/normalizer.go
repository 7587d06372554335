package bithumb

import (
	"strings"

	"krexchange/pkg/core"
)

// Normalizer maps successful Bithumb payloads to uniform results.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeAccountInfo extracts data.trade_fee.
func (n *Normalizer) NormalizeAccountInfo(body core.Payload) (*core.AccountInfo, error) {
	fee, err := body.String("data", "trade_fee")
	if err != nil {
		return nil, err
	}
	return &core.AccountInfo{Fee: fee}, nil
}

// NormalizeBalance extracts the KRW and coin balances from data. Bithumb keys
// balances in lower case, so a coin passed in upper case falls back to the
// lower-case key.
func (n *Normalizer) NormalizeBalance(body core.Payload, coin string) (*core.Balance, error) {
	availableKRW, err := body.String("data", "available_krw")
	if err != nil {
		return nil, err
	}
	total, err := coinField(body, "total_", coin)
	if err != nil {
		return nil, err
	}
	available, err := coinField(body, "available_", coin)
	if err != nil {
		return nil, err
	}

	return &core.Balance{
		Coin:         coin,
		AvailableKRW: availableKRW,
		Total:        total,
		Available:    available,
	}, nil
}

// NormalizeOrderBook extracts the timestamp and the best bid and ask as integers.
func (n *Normalizer) NormalizeOrderBook(body core.Payload) (*core.OrderBook, error) {
	ts, err := body.String("data", "timestamp")
	if err != nil {
		return nil, err
	}
	bid, err := body.Integer("data", "bids", 0, "price")
	if err != nil {
		return nil, err
	}
	ask, err := body.Integer("data", "asks", 0, "price")
	if err != nil {
		return nil, err
	}

	return &core.OrderBook{
		Timestamp:  ts,
		HighestBid: bid,
		LowestAsk:  ask,
	}, nil
}

func coinField(body core.Payload, prefix, coin string) (string, error) {
	v, err := body.String("data", prefix+coin)
	if err == nil {
		return v, nil
	}
	if lower := strings.ToLower(coin); lower != coin {
		if v, lerr := body.String("data", prefix+lower); lerr == nil {
			return v, nil
		}
	}
	return "", err
}
