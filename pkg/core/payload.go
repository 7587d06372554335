package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// payloadAPI decodes numbers as json.Number so mapped fields keep their exact wire text.
var payloadAPI = sonic.Config{UseNumber: true}.Froze()

// Payload is a decoded JSON object returned by an exchange.
type Payload map[string]any

// DecodePayload parses body as a JSON object.
func DecodePayload(body []byte) (Payload, error) {
	var p Payload
	if err := payloadAPI.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("body is not a JSON object")
	}
	return p, nil
}

// Lookup walks path through nested objects (string keys) and arrays (int indices).
func (p Payload) Lookup(path ...any) (any, error) {
	var cur any = map[string]any(p)
	for i, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := asObject(cur)
			if !ok {
				return nil, fmt.Errorf("%s is not an object", pathString(path[:i]))
			}
			v, ok := obj[key]
			if !ok || v == nil {
				return nil, fmt.Errorf("%s not found", pathString(path[:i+1]))
			}
			cur = v
		case int:
			arr, ok := cur.([]any)
			if !ok {
				return nil, fmt.Errorf("%s is not an array", pathString(path[:i]))
			}
			if key < 0 || key >= len(arr) {
				return nil, fmt.Errorf("%s out of range", pathString(path[:i+1]))
			}
			cur = arr[key]
		default:
			return nil, fmt.Errorf("invalid path element %v", step)
		}
	}
	return cur, nil
}

// String returns the value at path rendered as text.
func (p Payload) String(path ...any) (string, error) {
	v, err := p.Lookup(path...)
	if err != nil {
		return "", err
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%s is not a scalar", pathString(path))
	}
}

// Integer returns the value at path truncated to an integer.
// "105", "105.7" and 105 all yield 105.
func (p Payload) Integer(path ...any) (int64, error) {
	s, err := p.String(path...)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", pathString(path), s)
	}
	var whole, frac apd.Decimal
	d.Modf(&whole, &frac)
	n, err := whole.Int64()
	if err != nil {
		return 0, fmt.Errorf("%s: %q out of range", pathString(path), s)
	}
	return n, nil
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case Payload:
		return obj, true
	}
	return nil, false
}

func pathString(path []any) string {
	if len(path) == 0 {
		return "body"
	}
	parts := make([]string, len(path))
	for i, step := range path {
		switch s := step.(type) {
		case int:
			parts[i] = "[" + strconv.Itoa(s) + "]"
		default:
			parts[i] = fmt.Sprint(s)
		}
	}
	return strings.ReplaceAll(strings.Join(parts, "."), ".[", "[")
}
