// Package risk folds detector findings into a bounded score per watched address.
package risk

import (
	"fmt"
	"sort"

	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/core/watchlist"
)

// Points awarded per factor.
const (
	AnomalyPoints       = 20
	LargeTransferPoints = 15
	PointsPerDegree     = 5
	MaxCentralityPoints = 25
	MaxScore            = 100
)

type card struct {
	address string
	score   int
	factors []domain.RiskFactor
}

func (c *card) add(kind domain.FindingKind, points int, detail string) {
	c.score += points
	c.factors = append(c.factors, domain.RiskFactor{Kind: kind, Points: points, Detail: detail})
}

// Score builds one RiskScore per watched address, including addresses no
// finding mentions. Anomalies and large transfers count once per finding for
// each watched party; centrality counts once per address. Scores are capped at
// MaxScore and sorted highest first, ties in watchlist order.
func Score(
	watched watchlist.List,
	anomalies []domain.ValueAnomaly,
	largeTransfers []domain.LargeTransfer,
	centrality []domain.Centrality,
) []domain.RiskScore {
	addresses := watched.Addresses()
	cards := make(map[string]*card, len(addresses))
	order := make([]*card, 0, len(addresses))
	for _, addr := range addresses {
		c := &card{address: addr}
		cards[addr] = c
		order = append(order, c)
	}

	for _, f := range anomalies {
		for _, c := range touched(cards, f.Sender, f.Receiver) {
			c.add(f.Kind(), AnomalyPoints, fmt.Sprintf("value anomaly at event %d (z=%.2f)", f.Index, f.ZScore))
		}
	}
	for _, f := range largeTransfers {
		for _, c := range touched(cards, f.Sender, f.Receiver) {
			c.add(f.Kind(), LargeTransferPoints, fmt.Sprintf("large transfer of %s at event %d", f.Value, f.Index))
		}
	}

	scored := make(map[string]bool)
	for _, f := range centrality {
		addr := watchlist.Normalize(f.Address)
		c, ok := cards[addr]
		if !ok || scored[addr] {
			continue
		}
		scored[addr] = true
		points := min(MaxCentralityPoints, f.Degree*PointsPerDegree)
		if points <= 0 {
			continue
		}
		c.add(f.Kind(), points, fmt.Sprintf("%d distinct counterparties", f.Degree))
	}

	for _, c := range order {
		c.score = min(MaxScore, c.score)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].score > order[j].score
	})

	out := make([]domain.RiskScore, 0, len(order))
	for _, c := range order {
		factors := c.factors
		if factors == nil {
			factors = []domain.RiskFactor{}
		}
		out = append(out, domain.RiskScore{
			Address: c.address,
			Score:   c.score,
			Factors: factors,
		})
	}
	return out
}

// touched returns the distinct watched cards among the parties.
func touched(cards map[string]*card, parties ...string) []*card {
	var out []*card
	for i, p := range parties {
		p = watchlist.Normalize(p)
		if p == "" || contains(parties[:i], p) {
			continue
		}
		if c, ok := cards[p]; ok {
			out = append(out, c)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if watchlist.Normalize(v) == s {
			return true
		}
	}
	return false
}
