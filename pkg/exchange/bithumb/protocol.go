package bithumb

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"net/http"

	"github.com/cockroachdb/apd/v3"

	"krexchange/internal/nonce"
	"krexchange/pkg/core"
)

const (
	ProductionURL = "https://api.bithumb.com"

	// Fee is Bithumb's trade fee rate.
	Fee = "0.0015"

	// StatusOK is the status field value of a successful reply.
	StatusOK = "0000"
)

const (
	endpointAccount   = "/info/account"
	endpointBalance   = "/info/balance"
	endpointPlace     = "/trade/place"
	endpointOrderBook = "/public/orderbook/"
)

var feeRate = core.MustFeeRate(Fee)

// Protocol implements the core.Protocol interface for Bithumb.
type Protocol struct {
	nonce nonce.Source
}

// NewProtocol creates a Bithumb protocol drawing nonces from src.
func NewProtocol(src nonce.Source) *Protocol {
	return &Protocol{nonce: src}
}

// Name returns the protocol identifier "bithumb".
func (p *Protocol) Name() string {
	return "bithumb"
}

// BaseURL returns the Bithumb API base URL.
func (p *Protocol) BaseURL() string {
	return ProductionURL
}

// FeeRate returns a copy of Bithumb's fee rate.
func (p *Protocol) FeeRate() *apd.Decimal {
	return new(apd.Decimal).Set(feeRate)
}

// IsError reports a reply whose status is not "0000".
func (p *Protocol) IsError(body core.Payload) bool {
	status, ok := body["status"].(string)
	return !ok || status != StatusOK
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

// RateLimits returns the rate limit configuration for the Bithumb API.
func (p *Protocol) RateLimits() core.RateLimitConfig {
	return core.RateLimitConfig{
		RequestsPerSecond: 15,
		Burst:             15,
	}
}

// Sign builds a signed POST for endpoint. The body is the form
// endpoint=<endpoint>&<params...>; the signature covers the body wrapped
// between the endpoint and the nonce.
func (p *Protocol) Sign(creds core.Credentials, endpoint string, params core.Params) (*core.SignedRequest, error) {
	if creds.SecretKey == "" {
		return nil, core.NewExchangeError(p.Name(), core.ErrorTypeSigning, 0,
			"secret key is required for signing").WithCode(core.ErrCodeSign)
	}

	n := p.nonce.Next()
	form := core.NewParams("endpoint", endpoint).Merge(params).Encode()
	signature := signHMAC(creds.SecretKey, canonicalString(endpoint, form, n))

	return &core.SignedRequest{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Body:     []byte(form),
		Headers: map[string]string{
			"Api-Key":      creds.APIKey,
			"Api-Sign":     signature,
			"Api-Nonce":    n,
			"Content-Type": "application/x-www-form-urlencoded",
		},
		Nonce:     n,
		Signature: signature,
	}, nil
}

func canonicalString(endpoint, form, nonce string) string {
	return endpoint + "\x00" + form + "\x00" + nonce
}

// signHMAC returns base64(hex(HMAC-SHA512(secret, message))).
func signHMAC(secret, message string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(message))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(h.Sum(nil))))
}
