package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{"account_info", OpAccountInfo, "ACCOUNT_INFO"},
		{"balance", OpBalance, "BALANCE"},
		{"order_book", OpOrderBook, "ORDER_BOOK"},
		{"buy", OpBuy, "BUY"},
		{"sell", OpSell, "SELL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}
}

func TestOperation_IsPrivate(t *testing.T) {
	assert.True(t, OpAccountInfo.IsPrivate())
	assert.True(t, OpBalance.IsPrivate())
	assert.False(t, OpOrderBook.IsPrivate())
	assert.True(t, OpBuy.IsPrivate())
	assert.True(t, OpSell.IsPrivate())
}

func TestOperation_IsOrder(t *testing.T) {
	assert.False(t, OpAccountInfo.IsOrder())
	assert.False(t, OpBalance.IsOrder())
	assert.False(t, OpOrderBook.IsOrder())
	assert.True(t, OpBuy.IsOrder())
	assert.True(t, OpSell.IsOrder())
}
