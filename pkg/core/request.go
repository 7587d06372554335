package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// Param is a single request parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter list. Exchanges sign the exact byte sequence
// produced from it, so insertion order is preserved on every encoding.
type Params []Param

// NewParams builds Params from alternating key/value arguments.
func NewParams(kv ...any) Params {
	p := make(Params, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		p = p.Add(fmt.Sprint(kv[i]), kv[i+1])
	}
	return p
}

// Add appends a parameter and returns the extended list.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Get returns the first value stored under key.
func (p Params) Get(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Merge returns a new list holding p followed by other.
func (p Params) Merge(other Params) Params {
	out := make(Params, 0, len(p)+len(other))
	out = append(out, p...)
	return append(out, other...)
}

// Encode renders the list as an application/x-www-form-urlencoded string in insertion order.
func (p Params) Encode() string {
	var buf bytes.Buffer
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(kv.Key))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(FormatValue(kv.Value)))
	}
	return buf.String()
}

// MarshalJSON renders the list as a JSON object whose keys keep insertion order.
// Numeric values are emitted as JSON numbers, everything else as strings.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(kv.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %s: %w", kv.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := sonic.Marshal(jsonValue(kv.Value))
		if err != nil {
			return nil, fmt.Errorf("marshal value %s: %w", kv.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatValue renders a parameter value the way it appears on the wire.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case *apd.Decimal:
		return val.Text('f')
	case apd.Decimal:
		return val.Text('f')
	default:
		return fmt.Sprintf("%v", val)
	}
}

func jsonValue(v any) any {
	switch val := v.(type) {
	case *apd.Decimal:
		return json.Number(val.Text('f'))
	case apd.Decimal:
		return json.Number(val.Text('f'))
	default:
		return v
	}
}

// SignedRequest is a fully built request. It is constructed fresh per call and never mutated afterwards.
type SignedRequest struct {
	Method   string            `json:"method"`
	Endpoint string            `json:"endpoint"`
	Query    Params            `json:"query,omitempty"`
	Body     []byte            `json:"body,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	// Nonce is the replay guard used for the signature, empty for public requests.
	Nonce string `json:"nonce,omitempty"`
	// Signature is the computed signature, empty for public requests.
	Signature string `json:"signature,omitempty"`
}

// NewPublicRequest builds an unsigned GET request with query-encoded parameters.
func NewPublicRequest(endpoint string, query Params) *SignedRequest {
	return &SignedRequest{
		Method:   "GET",
		Endpoint: endpoint,
		Query:    query,
		Headers:  make(map[string]string),
	}
}

// IsSigned reports whether the request carries a signature.
func (r *SignedRequest) IsSigned() bool {
	return r.Signature != ""
}

// RawResponse is the transport's view of an exchange reply.
type RawResponse struct {
	StatusCode int
	Body       []byte
}
