package core

import (
	"fmt"
	"net/http"
)

// ErrorPredicate is an exchange's success discriminator. It returns true when
// a parsed 200 body reports a failure.
type ErrorPredicate func(body Payload) bool

// ResultKind tags a NormalizedResult.
type ResultKind int

const (
	// KindSuccess carries the parsed body.
	KindSuccess ResultKind = iota
	// KindFailure carries the failure reason and the raw reply.
	KindFailure
)

// NormalizedResult is the classified outcome of one exchange reply.
type NormalizedResult struct {
	Kind ResultKind
	// Payload is the parsed body, set on success.
	Payload Payload
	// Reason is the failure category, set on failure.
	Reason ErrorType
	// StatusCode and Body hold the raw reply that produced the result.
	StatusCode int
	Body       []byte
}

// Success wraps a parsed body.
func Success(status int, body []byte, payload Payload) *NormalizedResult {
	return &NormalizedResult{Kind: KindSuccess, Payload: payload, StatusCode: status, Body: body}
}

// Failure records why a reply was rejected.
func Failure(reason ErrorType, status int, body []byte) *NormalizedResult {
	return &NormalizedResult{Kind: KindFailure, Reason: reason, StatusCode: status, Body: body}
}

// OK reports whether the result is a success.
func (r *NormalizedResult) OK() bool {
	return r.Kind == KindSuccess
}

// Normalize classifies a reply with the exchange's discriminator. A non-200
// status is a transport failure and the body is not parsed. A 200 body that is
// not JSON is returned as a malformed response error. A nil reply counts as a
// transport failure.
func Normalize(exchange string, resp *RawResponse, isError ErrorPredicate) (*NormalizedResult, error) {
	if resp == nil {
		return Failure(ErrorTypeTransport, 0, nil), nil
	}
	if resp.StatusCode != http.StatusOK {
		return Failure(ErrorTypeTransport, resp.StatusCode, resp.Body), nil
	}

	payload, err := DecodePayload(resp.Body)
	if err != nil {
		return nil, NewExchangeError(exchange, ErrorTypeMalformedResponse, resp.StatusCode,
			fmt.Sprintf("decode body: %v", err)).WithCode(ErrCodeInvalidJSON).Wrap(err)
	}

	if isError(payload) {
		return Failure(ErrorTypeBusiness, resp.StatusCode, resp.Body), nil
	}
	return Success(resp.StatusCode, resp.Body, payload), nil
}
