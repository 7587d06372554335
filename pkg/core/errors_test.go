package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		want      string
	}{
		{"unknown", ErrorTypeUnknown, "UNKNOWN"},
		{"transport", ErrorTypeTransport, "TRANSPORT"},
		{"malformed_response", ErrorTypeMalformedResponse, "MALFORMED_RESPONSE"},
		{"business", ErrorTypeBusiness, "BUSINESS"},
		{"signing", ErrorTypeSigning, "SIGNING"},
		{"configuration", ErrorTypeConfiguration, "CONFIGURATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errorType.String())
		})
	}
}

func TestExchangeError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExchangeError
		want string
	}{
		{
			name: "without_code",
			err: &ExchangeError{
				Exchange:   "bithumb",
				Type:       ErrorTypeTransport,
				StatusCode: 503,
				Message:    "service unavailable",
			},
			want: "[bithumb] TRANSPORT (503): service unavailable",
		},
		{
			name: "with_code",
			err: &ExchangeError{
				Exchange:   "coinone",
				Type:       ErrorTypeMalformedResponse,
				StatusCode: 200,
				Code:       "INVALID_JSON",
				Message:    "decode body",
			},
			want: "[coinone] MALFORMED_RESPONSE (200/INVALID_JSON): decode body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNewExchangeError(t *testing.T) {
	err := NewExchangeError("bithumb", ErrorTypeSigning, 0, "hmac failed")

	assert.NotNil(t, err)
	assert.Equal(t, "bithumb", err.Exchange)
	assert.Equal(t, ErrorTypeSigning, err.Type)
	assert.Equal(t, 0, err.StatusCode)
	assert.Equal(t, "hmac failed", err.Message)
	assert.False(t, err.Timestamp.IsZero())
}

func TestExchangeError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewExchangeError("coinone", ErrorTypeMalformedResponse, 200, "decode").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("balance: %w", err), cause)
}

func TestErrorTypeHelpers(t *testing.T) {
	malformed := NewExchangeError("x", ErrorTypeMalformedResponse, 200, "m")
	signing := NewExchangeError("x", ErrorTypeSigning, 0, "s")
	config := NewExchangeError("x", ErrorTypeConfiguration, 0, "c")
	wrapped := fmt.Errorf("op: %w", malformed)

	assert.True(t, IsMalformedResponse(malformed))
	assert.True(t, IsMalformedResponse(wrapped))
	assert.False(t, IsMalformedResponse(signing))

	assert.True(t, IsSigningError(signing))
	assert.False(t, IsSigningError(config))

	assert.True(t, IsConfigurationError(config))
	assert.False(t, IsConfigurationError(errors.New("plain")))
}

func TestIsErrorCode(t *testing.T) {
	err := NewExchangeError("x", ErrorTypeConfiguration, 0, "no creds").WithCode(ErrCodeNoCredentials)

	assert.True(t, IsErrorCode(err, ErrCodeNoCredentials))
	assert.True(t, IsErrorCode(fmt.Errorf("wrap: %w", err), ErrCodeNoCredentials))
	assert.False(t, IsErrorCode(err, ErrCodeInvalidJSON))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrCodeNoCredentials))
}
