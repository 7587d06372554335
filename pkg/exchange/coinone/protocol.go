package coinone

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"krexchange/internal/nonce"
	"krexchange/pkg/core"
)

const (
	ProductionURL = "https://api.coinone.co.kr"

	// Fee is Coinone's trade fee rate.
	Fee = "0.001"

	// ResultSuccess is the result field value of a successful reply.
	ResultSuccess = "success"
)

const (
	endpointUserInfo  = "/v2/account/user_info"
	endpointBalance   = "/v2/account/balance"
	endpointLimitBuy  = "/v2/order/limit_buy"
	endpointLimitSell = "/v2/order/limit_sell"
	endpointOrderBook = "/orderbook"
)

var feeRate = core.MustFeeRate(Fee)

// Protocol implements the core.Protocol interface for Coinone.
type Protocol struct {
	nonce nonce.Source
}

// NewProtocol creates a Coinone protocol drawing nonces from src.
func NewProtocol(src nonce.Source) *Protocol {
	return &Protocol{nonce: src}
}

// Name returns the protocol identifier "coinone".
func (p *Protocol) Name() string {
	return "coinone"
}

// BaseURL returns the Coinone API base URL.
func (p *Protocol) BaseURL() string {
	return ProductionURL
}

// FeeRate returns a copy of Coinone's fee rate.
func (p *Protocol) FeeRate() *apd.Decimal {
	return new(apd.Decimal).Set(feeRate)
}

// IsError reports a reply whose result is not "success".
func (p *Protocol) IsError(body core.Payload) bool {
	result, ok := body["result"].(string)
	return !ok || result != ResultSuccess
}

// SupportedOperations returns the list of operations supported by this protocol.
func (p *Protocol) SupportedOperations() []core.Operation {
	return []core.Operation{
		core.OpAccountInfo,
		core.OpBalance,
		core.OpOrderBook,
		core.OpBuy,
		core.OpSell,
	}
}

// RateLimits returns the rate limit configuration for the Coinone API.
func (p *Protocol) RateLimits() core.RateLimitConfig {
	return core.RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             10,
	}
}

// Sign builds a signed POST for endpoint. The JSON payload starts with
// access_token and nonce followed by params in order.
func (p *Protocol) Sign(creds core.Credentials, endpoint string, params core.Params) (*core.SignedRequest, error) {
	if creds.SecretKey == "" {
		return nil, core.NewExchangeError(p.Name(), core.ErrorTypeSigning, 0,
			"secret key is required for signing").WithCode(core.ErrCodeSign)
	}

	n := p.nonce.Next()
	raw, err := core.NewParams("access_token", creds.APIKey, "nonce", n).Merge(params).MarshalJSON()
	if err != nil {
		return nil, core.NewExchangeError(p.Name(), core.ErrorTypeSigning, 0,
			fmt.Sprintf("encode payload: %v", err)).WithCode(core.ErrCodeEncodePayload).Wrap(err)
	}

	payload := base64.StdEncoding.EncodeToString(raw)
	signature := signHMAC(creds.SecretKey, payload)

	return &core.SignedRequest{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Body:     []byte(payload),
		Headers: map[string]string{
			"Content-Type":        "application/json",
			"X-COINONE-PAYLOAD":   payload,
			"X-COINONE-SIGNATURE": signature,
		},
		Nonce:     n,
		Signature: signature,
	}, nil
}

// signHMAC returns hex(HMAC-SHA512(upper(secret), payload)).
func signHMAC(secret, payload string) string {
	h := hmac.New(sha512.New, []byte(strings.ToUpper(secret)))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
