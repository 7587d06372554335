package core

// Operation represents an exchange-agnostic action a client can perform.
type Operation int

// Operation constants define the capability set shared by every exchange.
const (
	// OpAccountInfo retrieves account-level information such as the trade fee.
	OpAccountInfo Operation = iota
	// OpBalance retrieves KRW and coin balances.
	OpBalance
	// OpOrderBook retrieves the best bid and ask of a coin's order book.
	OpOrderBook
	// OpBuy places a limit buy order.
	OpBuy
	// OpSell places a limit sell order.
	OpSell
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"ACCOUNT_INFO",
		"BALANCE",
		"ORDER_BOOK",
		"BUY",
		"SELL",
	}[o]
}

// IsPrivate reports whether the operation requires signed credentials.
func (o Operation) IsPrivate() bool {
	return o != OpOrderBook
}

// IsOrder reports whether the operation places an order.
// Order failures are forwarded to the failure reporter.
func (o Operation) IsOrder() bool {
	return o == OpBuy || o == OpSell
}
