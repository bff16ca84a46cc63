package counterparty

import (
	"math/big"
	"sort"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultTopSenders is the leaderboard length used when n is not positive.
const DefaultTopSenders = 10

// SenderTotal is one leaderboard row.
type SenderTotal struct {
	Address    string        `json:"address"`
	Transfers  int           `json:"transfers"`
	TotalValue domain.Amount `json:"total_value"`
}

// TopSenders ranks senders by the total value they sent, highest first.
// Ties keep first-seen order. Events with an unparsable value are skipped.
func TopSenders(events []*domain.DecodedEvent, n int) []SenderTotal {
	if n <= 0 {
		n = DefaultTopSenders
	}

	type row struct {
		address string
		count   int
		total   *big.Int
	}
	rows := make(map[string]*row)
	var order []*row
	for _, e := range events {
		from, ok := e.Sender()
		if !ok {
			continue
		}
		value, ok := numeric.Int(e.PrimaryValue())
		if !ok {
			continue
		}
		r, seen := rows[from]
		if !seen {
			r = &row{address: from, total: new(big.Int)}
			rows[from] = r
			order = append(order, r)
		}
		r.count++
		r.total.Add(r.total, value)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].total.Cmp(order[j].total) > 0
	})
	if len(order) > n {
		order = order[:n]
	}

	out := make([]SenderTotal, 0, len(order))
	for _, r := range order {
		out = append(out, SenderTotal{Address: r.address, Transfers: r.count, TotalValue: domain.NewAmount(r.total)})
	}
	return out
}
