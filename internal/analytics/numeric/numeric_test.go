package numeric

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/vietddude/sniffer/internal/core/domain"
)

func TestInt(t *testing.T) {
	huge, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)

	tests := []struct {
		name  string
		input any
		want  *big.Int
		ok    bool
	}{
		{"nil", nil, nil, false},
		{"native int", 42, big.NewInt(42), true},
		{"native int64", int64(-7), big.NewInt(-7), true},
		{"native uint64", uint64(1) << 63, new(big.Int).Lsh(big.NewInt(1), 63), true},
		{"hex", "0xff", big.NewInt(255), true},
		{"hex upper prefix", "0XFF", big.NewInt(255), true},
		{"decimal", "1000", big.NewInt(1000), true},
		{"negative decimal", "-12", big.NewInt(-12), true},
		{"padded", "  15 ", big.NewInt(15), true},
		{"uint256 max hex", "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", huge, true},
		{"json number", json.Number("123456789012345678901234567890"), mustBig("123456789012345678901234567890"), true},
		{"wrapped value", domain.V("0x10"), big.NewInt(16), true},
		{"empty", "", nil, false},
		{"bare prefix", "0x", nil, false},
		{"garbage", "abc", nil, false},
		{"bad hex", "0xzz", nil, false},
		{"signed hex", "0x-1", nil, false},
		{"negated hex", "-0x10", nil, false},
		{"digit separators", "1_000", nil, false},
		{"float string", "1.5", nil, false},
		{"bool", true, nil, false},
	}

	for _, tt := range tests {
		got, ok := Int(tt.input)
		if ok != tt.ok {
			t.Errorf("%s: expected ok=%v, got %v", tt.name, tt.ok, ok)
			continue
		}
		if !ok {
			if got != nil {
				t.Errorf("%s: expected nil result, got %v", tt.name, got)
			}
			continue
		}
		if got.Cmp(tt.want) != 0 {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestInt_DoesNotAliasInput(t *testing.T) {
	in := big.NewInt(5)
	out, ok := Int(in)
	if !ok {
		t.Fatal("expected ok")
	}
	out.SetInt64(99)
	if in.Int64() != 5 {
		t.Errorf("expected input untouched, got %s", in)
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		input any
		want  float64
		ok    bool
	}{
		{nil, 0, false},
		{"0x10", 16, true},
		{"2500", 2500, true},
		{3.25, 3.25, true},
		{"nope", 0, false},
		{"0x" + strings.Repeat("f", 300), 0, false},
	}

	for _, tt := range tests {
		got, ok := Float(tt.input)
		if ok != tt.ok {
			t.Errorf("Float(%v): expected ok=%v, got %v", tt.input, tt.ok, ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Float(%v): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test literal " + s)
	}
	return n
}
