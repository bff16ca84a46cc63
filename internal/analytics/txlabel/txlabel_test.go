package txlabel

import (
	"math/big"
	"testing"

	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/core/watchlist"
)

func TestSelectorOf(t *testing.T) {
	tests := []struct {
		signature string
		want      string
	}{
		{"transfer(address,uint256)", "0xa9059cbb"},
		{"approve(address,uint256)", "0x095ea7b3"},
		{"transferFrom(address,address,uint256)", "0x23b872dd"},
	}
	for _, tt := range tests {
		if got := SelectorOf(tt.signature); got != tt.want {
			t.Errorf("SelectorOf(%q) = %s, want %s", tt.signature, got, tt.want)
		}
	}
}

func TestDecodeMethods(t *testing.T) {
	custom := Registry{"0xdeadbeef": "rugPull()", "0xa9059cbb": "overridden"}
	txs := []domain.Transaction{
		{Hash: "0x1", Input: "0xA9059CBB000000000000000000000000"},
		{Hash: "0x2", Input: "0x095ea7b3"},
		{Hash: "0x3", Input: "0xdeadbeef"},
		{Hash: "0x4", Input: "0x12345678"},
		{Hash: "0x5", Input: "0x"},
	}

	got := DecodeMethods(txs, custom)

	tests := []struct {
		selector string
		method   string
	}{
		{"0xa9059cbb", "overridden"},
		{"0x095ea7b3", "approve(address,uint256)"},
		{"0xdeadbeef", "rugPull()"},
		{"0x12345678", ""},
		{"", ""},
	}
	for i, tt := range tests {
		if got[i].Selector != tt.selector {
			t.Errorf("tx %d: selector = %q, want %q", i, got[i].Selector, tt.selector)
		}
		switch {
		case tt.method == "" && got[i].Method != nil:
			t.Errorf("tx %d: expected nil method, got %q", i, *got[i].Method)
		case tt.method != "" && (got[i].Method == nil || *got[i].Method != tt.method):
			t.Errorf("tx %d: expected method %q, got %v", i, tt.method, got[i].Method)
		}
	}

	if m := DecodeMethods(txs[:1], nil)[0].Method; m == nil || *m != "transfer(address,uint256)" {
		t.Errorf("expected built-in registry with nil lookup, got %v", m)
	}
}

func TestLabelRisk(t *testing.T) {
	big20 := DefaultLargeValueThreshold()
	txs := Wrap([]domain.Transaction{
		{From: "0xA", To: "0xB", Value: domain.V("0x0")},
		{From: "0xc", To: "0xd", Value: domain.V(big20)},
		{From: "0xa", To: "0xb", Value: domain.V(new(big.Int).Add(big20, big.NewInt(1)).String())},
		{From: "0xe", To: "", Value: domain.V("junk")},
	})

	got := LabelRisk(txs, watchlist.New("0xa", "0xB"), nil)

	want := [][]domain.RiskFlag{
		{domain.RiskFlagSenderWatchlist, domain.RiskFlagRecipientWatchlist},
		{domain.RiskFlagLargeValue},
		{domain.RiskFlagSenderWatchlist, domain.RiskFlagRecipientWatchlist, domain.RiskFlagLargeValue},
		{},
	}
	for i := range want {
		if len(got[i].RiskFlags) != len(want[i]) {
			t.Fatalf("tx %d: flags = %v, want %v", i, got[i].RiskFlags, want[i])
		}
		for j := range want[i] {
			if got[i].RiskFlags[j] != want[i][j] {
				t.Errorf("tx %d: flags = %v, want %v", i, got[i].RiskFlags, want[i])
			}
		}
	}

	if len(txs[0].RiskFlags) != 0 {
		t.Error("LabelRisk must not mutate its input")
	}
}

func TestLabelRisk_CustomThresholdNoWatchlist(t *testing.T) {
	txs := Wrap([]domain.Transaction{{From: "0xa", Value: domain.V(50)}})
	got := LabelRisk(txs, nil, big.NewInt(50))
	if !got[0].HasFlag(domain.RiskFlagLargeValue) || len(got[0].RiskFlags) != 1 {
		t.Errorf("expected only large_value, got %v", got[0].RiskFlags)
	}
}
