package swap

import (
	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultMaxSwaps is the number of swaps between one pair at which it is flagged.
const DefaultMaxSwaps = 3

type pair [2]string

func newPair(a, b string) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}

// WashTrades counts swaps per unordered participant pair and flags every pair
// with at least maxSwaps swaps. (A,B) and (B,A) share one counter. Findings
// follow the order in which pairs were first seen.
func WashTrades(events []*domain.DecodedEvent, maxSwaps int) []domain.WashTradePair {
	counts := make(map[pair]int)
	var order []pair
	for _, e := range events {
		if e == nil || len(e.Indexed) < 3 {
			continue
		}
		a, okA := e.Sender()
		b, okB := e.Receiver()
		if !okA || !okB {
			continue
		}
		p := newPair(a, b)
		if _, seen := counts[p]; !seen {
			order = append(order, p)
		}
		counts[p]++
	}

	var findings []domain.WashTradePair
	for _, p := range order {
		if n := counts[p]; n >= maxSwaps {
			findings = append(findings, domain.WashTradePair{Participants: p, Swaps: n})
		}
	}
	return findings
}
