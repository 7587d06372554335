package core

import "errors"

// ErrorCode represents a stable, machine-readable error identifier.
type ErrorCode string

// Error code constants define standardized error identifiers across all exchanges.
const (
	// ErrCodeHTTPStatus indicates the exchange answered with a non-200 status.
	ErrCodeHTTPStatus ErrorCode = "HTTP_STATUS"
	// ErrCodeNetwork indicates a connection-level failure.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeRejected indicates the exchange's success discriminator reported failure.
	ErrCodeRejected ErrorCode = "REJECTED"
	// ErrCodeInvalidJSON indicates a 200 response whose body is not JSON.
	ErrCodeInvalidJSON ErrorCode = "INVALID_JSON"
	// ErrCodeMissingField indicates a success body lacking a mapped field.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidField indicates a mapped field with an unusable value.
	ErrCodeInvalidField ErrorCode = "INVALID_FIELD"

	// Configuration errors
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	ErrCodeNoCredentials ErrorCode = "NO_CREDENTIALS"
	ErrCodeMissingParam  ErrorCode = "MISSING_PARAMETER"
	ErrCodeUnknownKind   ErrorCode = "UNKNOWN_EXCHANGE"
	ErrCodeUnsupported   ErrorCode = "UNSUPPORTED_OPERATION"

	// Signing errors
	ErrCodeEncodePayload ErrorCode = "ENCODE_PAYLOAD"
	ErrCodeSign          ErrorCode = "SIGN"
)

// IsErrorCode checks if the error matches the specified error code.
// It extracts the exchange error and compares its code field against the provided ErrorCode.
func IsErrorCode(err error, code ErrorCode) bool {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return ErrorCode(exErr.Code) == code
	}
	return false
}
