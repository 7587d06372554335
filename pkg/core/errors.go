package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of an exchange error.
type ErrorType int

// Error type constants categorize failures by how callers should treat them.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeTransport indicates a non-200 status or a connection-level failure.
	ErrorTypeTransport
	// ErrorTypeMalformedResponse indicates a 200 response that cannot be interpreted.
	ErrorTypeMalformedResponse
	// ErrorTypeBusiness indicates the exchange rejected the request in a 200 response.
	ErrorTypeBusiness
	// ErrorTypeSigning indicates the request could not be encoded or signed.
	ErrorTypeSigning
	// ErrorTypeConfiguration indicates a client set up without what an operation needs.
	ErrorTypeConfiguration
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"TRANSPORT",
		"MALFORMED_RESPONSE",
		"BUSINESS",
		"SIGNING",
		"CONFIGURATION",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrNoCredentials is returned when a private operation runs without API credentials.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrUnknownExchange is returned when the registry has no constructor for a kind.
	ErrUnknownExchange = errors.New("unknown exchange")
)

// ExchangeError represents a structured error produced while talking to an exchange.
type ExchangeError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code from the response, zero when no response exists.
	StatusCode int `json:"status_code"`
	// Code is the error code.
	Code string `json:"code"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Exchange identifies which exchange the error belongs to.
	Exchange string `json:"exchange"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
	// Err is the underlying cause, if any.
	Err error `json:"-"`
}

// Error implements the error interface for ExchangeError.
// It returns a formatted string with exchange name, error type, status code, and message.
func (e *ExchangeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (%d/%s): %s",
			e.Exchange, e.Type, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (%d): %s",
		e.Exchange, e.Type, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// WithCode returns the ExchangeError with the specified error code.
func (e *ExchangeError) WithCode(code ErrorCode) *ExchangeError {
	e.Code = string(code)
	return e
}

// Wrap attaches the underlying cause and returns the ExchangeError.
func (e *ExchangeError) Wrap(err error) *ExchangeError {
	e.Err = err
	return e
}

// NewExchangeError creates a new ExchangeError with the specified details.
// The timestamp is automatically set to the current time.
func NewExchangeError(exchange string, errorType ErrorType, statusCode int, message string) *ExchangeError {
	return &ExchangeError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		Exchange:   exchange,
		Timestamp:  time.Now(),
	}
}

func isType(err error, t ErrorType) bool {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsMalformedResponse returns true if the error reports a response that does not follow the exchange protocol.
func IsMalformedResponse(err error) bool {
	return isType(err, ErrorTypeMalformedResponse)
}

// IsSigningError returns true if the request could not be signed.
func IsSigningError(err error) bool {
	return isType(err, ErrorTypeSigning)
}

// IsConfigurationError returns true if the client lacks something the operation requires.
func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}
