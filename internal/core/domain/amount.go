package domain

import (
	"math/big"
	"strconv"
)

// Amount is an integer quantity leaving the analytics core.
// Values outside the signed 64-bit range are rendered as decimal strings
// so JSON consumers that parse numbers as doubles do not lose precision.
type Amount struct {
	n *big.Int
}

// NewAmount wraps n. A nil n is treated as zero.
func NewAmount(n *big.Int) Amount {
	if n == nil {
		return Amount{n: new(big.Int)}
	}
	return Amount{n: new(big.Int).Set(n)}
}

// AmountFromInt64 wraps a native integer.
func AmountFromInt64(v int64) Amount {
	return Amount{n: big.NewInt(v)}
}

// Int returns a copy of the underlying integer.
func (a Amount) Int() *big.Int {
	if a.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.n)
}

// String returns the base-10 representation.
func (a Amount) String() string {
	if a.n == nil {
		return "0"
	}
	return a.n.String()
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.n == nil {
		return []byte("0"), nil
	}
	if a.n.IsInt64() {
		return []byte(a.n.String()), nil
	}
	return []byte(strconv.Quote(a.n.String())), nil
}

// UnmarshalJSON accepts a JSON number or a decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return &strconv.NumError{Func: "Amount.UnmarshalJSON", Num: s, Err: strconv.ErrSyntax}
	}
	a.n = n
	return nil
}

// UnmarshalYAML accepts integers, 0x-prefixed hex and integral exponent
// notation such as 1e18.
func (a *Amount) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	n, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = n
	return nil
}

// ParseAmount parses a decimal, 0x-prefixed hex or integral exponent literal.
func ParseAmount(s string) (Amount, error) {
	if n, ok := new(big.Int).SetString(s, 0); ok {
		return Amount{n: n}, nil
	}
	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err == nil && f.IsInt() {
		n, _ := f.Int(nil)
		return Amount{n: n}, nil
	}
	return Amount{}, &strconv.NumError{Func: "ParseAmount", Num: s, Err: strconv.ErrSyntax}
}
