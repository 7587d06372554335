// Package bithumb implements the Exchange interface for the Bithumb KRW market.
//
// Private endpoints are signed with HMAC-SHA512 over
// endpoint + NUL + form + NUL + nonce, hex encoded and then base64 encoded.
// A reply succeeds when its "status" field is "0000".
//
// Bithumb API Documentation: https://apidocs.bithumb.com
package bithumb
