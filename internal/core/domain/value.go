package domain

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
)

// Value is a single decoded ABI parameter.
// It holds nil, a string (hex or decimal literal), or a native integer.
// Decoders upstream are not trusted to pick one representation.
type Value struct {
	raw any
}

// V wraps a raw decoded value.
func V(raw any) Value {
	if v, ok := raw.(Value); ok {
		return v
	}
	return Value{raw: raw}
}

// Values wraps a list of raw decoded values.
func Values(raw ...any) []Value {
	out := make([]Value, len(raw))
	for i, r := range raw {
		out[i] = V(r)
	}
	return out
}

// Raw returns the underlying decoded value.
func (v Value) Raw() any {
	return v.raw
}

// IsNil reports whether the value is absent.
func (v Value) IsNil() bool {
	return v.raw == nil
}

// Address returns the value as a lower-cased address string.
// Non-string and empty values are not addresses.
func (v Value) Address() (string, bool) {
	s, ok := v.raw.(string)
	if !ok {
		return "", false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	return s, true
}

// UnmarshalJSON accepts a bare scalar or the decoder's {"val": x} wrapper.
// Numbers are kept as json.Number so that 256-bit integers survive decoding.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Val json.RawMessage `json:"val"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		if wrapped.Val == nil {
			v.raw = nil
			return nil
		}
		return v.UnmarshalJSON(wrapped.Val)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	// Arrays and objects are kept verbatim; numeric parsing rejects them.
	v.raw = raw
	return nil
}

// MarshalJSON renders integers beyond the signed 64-bit range as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch r := v.raw.(type) {
	case json.Number:
		n, ok := new(big.Int).SetString(r.String(), 10)
		if ok {
			return NewAmount(n).MarshalJSON()
		}
		return []byte(r.String()), nil
	case *big.Int:
		return NewAmount(r).MarshalJSON()
	case big.Int:
		return NewAmount(&r).MarshalJSON()
	case uint64:
		return NewAmount(new(big.Int).SetUint64(r)).MarshalJSON()
	}
	return json.Marshal(v.raw)
}
