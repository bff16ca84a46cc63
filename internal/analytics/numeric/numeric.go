// Package numeric normalizes heterogeneous numeric encodings found in decoded
// chain data (hex strings, decimal strings, native integers) into big integers
// and floats. Unparsable input is reported with ok=false, never an error.
package numeric

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/vietddude/sniffer/internal/core/domain"
)

// Int converts v to an integer.
// Strings with a 0x prefix are read as base-16, other strings as base-10.
func Int(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case domain.Value:
		return Int(x.Raw())
	case *domain.Value:
		if x == nil {
			return nil, false
		}
		return Int(x.Raw())
	case domain.Amount:
		return x.Int(), true
	case *big.Int:
		if x == nil {
			return nil, false
		}
		return new(big.Int).Set(x), true
	case big.Int:
		return new(big.Int).Set(&x), true
	case int:
		return big.NewInt(int64(x)), true
	case int8:
		return big.NewInt(int64(x)), true
	case int16:
		return big.NewInt(int64(x)), true
	case int32:
		return big.NewInt(int64(x)), true
	case int64:
		return big.NewInt(x), true
	case uint:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint64:
		return new(big.Int).SetUint64(x), true
	case json.Number:
		return parseString(x.String())
	case string:
		return parseString(x)
	default:
		return nil, false
	}
}

// Float converts v to a float64 with the same nil-safe contract as Int.
// Native floats are accepted as-is. NaN, infinities and integers beyond the
// float64 range are rejected.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		f := float64(x)
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case domain.Value:
		if f, ok := x.Raw().(float64); ok {
			return Float(f)
		}
	}
	n, ok := Int(v)
	if !ok {
		return 0, false
	}
	f := ToFloat(n)
	if math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToFloat converts n to the nearest float64.
func ToFloat(n *big.Int) float64 {
	if n == nil {
		return 0
	}
	if n.IsInt64() {
		return float64(n.Int64())
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// Abs returns |n| as a new integer.
func Abs(n *big.Int) *big.Int {
	return new(big.Int).Abs(n)
}

func parseString(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := s[2:]
		if digits == "" || strings.ContainsAny(digits, "+-") {
			return nil, false
		}
		return new(big.Int).SetString(digits, 16)
	}
	return new(big.Int).SetString(s, 10)
}
