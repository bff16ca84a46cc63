package stats

import (
	"strings"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultBaselineWindow is the number of most recent values kept per address.
const DefaultBaselineWindow = 20

// Baseline summarizes the recent transfer values of one address.
type Baseline struct {
	Address      string  `json:"address"`
	Samples      int     `json:"samples"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Latest       float64 `json:"latest"`
	LatestZScore float64 `json:"latest_z_score"`
}

// WalletBaselines computes a baseline per address over the last window values
// of the events it sent or received. With no addresses, every sender in the
// batch gets a baseline over the values it sent, in order of first appearance.
// A window <= 0 keeps all values.
func WalletBaselines(events []*domain.DecodedEvent, addresses []string, window int) []Baseline {
	order := make([]string, 0, len(addresses))
	seen := make(map[string]bool)
	for _, a := range addresses {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		order = append(order, a)
	}
	discover := len(order) == 0

	series := make(map[string][]float64)
	for _, e := range events {
		if e == nil {
			continue
		}
		from, to := e.Parties()
		if discover && from != "" && !seen[from] {
			seen[from] = true
			order = append(order, from)
		}
		v, ok := numeric.Float(e.PrimaryValue())
		if !ok {
			continue
		}
		if from != "" && seen[from] {
			series[from] = append(series[from], v)
		}
		// A self-transfer counts once.
		if to != "" && to != from && seen[to] && !discover {
			series[to] = append(series[to], v)
		}
	}

	out := make([]Baseline, 0, len(order))
	for _, addr := range order {
		values := series[addr]
		if window > 0 && len(values) > window {
			values = values[len(values)-window:]
		}
		b := Baseline{Address: addr, Samples: len(values)}
		if len(values) > 0 {
			b.Mean, b.StdDev = MeanStd(values)
			b.Latest = values[len(values)-1]
			b.LatestZScore = ZScore(b.Latest, b.Mean, b.StdDev)
		}
		out = append(out, b)
	}
	return out
}
