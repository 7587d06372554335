// Package coinone implements the Exchange interface for Coinone.
//
// Private endpoints take a base64-encoded JSON payload carrying the access
// token and nonce. The payload is signed with HMAC-SHA512 keyed by the upper-cased
// secret, and both travel in X-COINONE-* headers. A reply succeeds when its
// "result" field is "success".
package coinone
