package core

// AccountInfo is the uniform account_info result.
type AccountInfo struct {
	Error bool `json:"error"`
	// Fee is the account's trade fee as reported by the exchange.
	Fee string `json:"fee,omitempty"`
}

// Fields returns the result as a field mapping.
func (a *AccountInfo) Fields() map[string]any {
	if a.Error {
		return map[string]any{"error": true}
	}
	return map[string]any{"error": false, "fee": a.Fee}
}

// Balance is the uniform balance result for one coin.
type Balance struct {
	Error bool   `json:"error"`
	Coin  string `json:"coin"`
	// TotalKRW is only reported by exchanges that expose it.
	TotalKRW     string `json:"total_krw,omitempty"`
	AvailableKRW string `json:"available_krw,omitempty"`
	Total        string `json:"total,omitempty"`
	Available    string `json:"available,omitempty"`
}

// Fields returns the result keyed the way the exchanges name their fields,
// e.g. total_btc and available_btc for coin "btc".
func (b *Balance) Fields() map[string]any {
	if b.Error {
		return map[string]any{"error": true}
	}
	fields := map[string]any{
		"error":               false,
		"available_krw":       b.AvailableKRW,
		"total_" + b.Coin:     b.Total,
		"available_" + b.Coin: b.Available,
	}
	if b.TotalKRW != "" {
		fields["total_krw"] = b.TotalKRW
	}
	return fields
}

// OrderBook is the uniform top-of-book result.
type OrderBook struct {
	Error bool `json:"error"`
	// Timestamp is the exchange timestamp in milliseconds, as text.
	Timestamp  string `json:"timestamp,omitempty"`
	HighestBid int64  `json:"highest_bid,omitempty"`
	LowestAsk  int64  `json:"lowest_ask,omitempty"`
}

// Fields returns the result as a field mapping.
func (o *OrderBook) Fields() map[string]any {
	if o.Error {
		return map[string]any{"error": true}
	}
	return map[string]any{
		"error":       false,
		"timestamp":   o.Timestamp,
		"highest_bid": o.HighestBid,
		"lowest_ask":  o.LowestAsk,
	}
}

// OrderResult is the uniform buy/sell result.
type OrderResult struct {
	Error bool `json:"error"`
}

// Fields returns the result as a field mapping.
func (o *OrderResult) Fields() map[string]any {
	return map[string]any{"error": o.Error}
}
