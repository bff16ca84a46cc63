package watchlist

import (
	"fmt"
	"testing"
)

func TestWatchlist(t *testing.T) {
	w := New("0xABC", " 0xdef ", "", "0xabc")

	if !w.Contains("0xabc") || !w.Contains("0XABC") {
		t.Error("Expected watchlist to be case-insensitive")
	}
	if !w.Contains("0xDEF") {
		t.Error("Expected watchlist to trim input")
	}
	if w.Contains("0x456") {
		t.Error("Expected watchlist not to contain 0x456")
	}
	if w.Size() != 2 {
		t.Errorf("Expected size to be 2, got %d", w.Size())
	}

	if w.Add("0xAbc") {
		t.Error("Expected duplicate add to report false")
	}
	if !w.Add("0x123") {
		t.Error("Expected new add to report true")
	}

	want := []string{"0xabc", "0xdef", "0x123"}
	got := w.Addresses()
	if len(got) != len(want) {
		t.Fatalf("Expected %d addresses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestWatchlist_Nil(t *testing.T) {
	var w *Watchlist
	if w.Contains("0xabc") {
		t.Error("Expected nil watchlist to contain nothing")
	}
	if w.Size() != 0 || w.Addresses() != nil {
		t.Error("Expected nil watchlist to be empty")
	}
}

func TestWatchlist_LargeList(t *testing.T) {
	addrs := make([]string, 2000)
	for i := range addrs {
		addrs[i] = fmt.Sprintf("0x%040X", i)
	}
	w := New(addrs...)
	if w.Size() != len(addrs) {
		t.Fatalf("Expected %d addresses, got %d", len(addrs), w.Size())
	}
	for _, addr := range addrs {
		if !w.Contains(addr) {
			t.Fatalf("Expected %s to be watched", addr)
		}
	}
	if w.Contains("0xnotwatched") {
		t.Error("Expected unknown address to be rejected")
	}
}
