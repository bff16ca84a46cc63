// Package counterparty aggregates transfer volume around watched addresses and
// ranks the external addresses they dealt with.
package counterparty

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/core/watchlist"
)

// DefaultDecimals is the token precision used to render TotalUnits.
const DefaultDecimals = 18

// Options configures Summarize.
type Options struct {
	// Decimals scales TotalValue into token units. Negative means raw units.
	Decimals int32
}

// DefaultOptions returns the summarizer defaults.
func DefaultOptions() Options {
	return Options{Decimals: DefaultDecimals}
}

type activity struct {
	inCount, outCount int
	inValue, outValue *big.Int
}

type ledgerEntry struct {
	address      string
	interactions int
	total        *big.Int
}

// Summarize computes per-watched-address in/out activity and the ledger of
// unwatched counterparties. Values that fail to parse count as zero so that
// interaction counts stay exact. Every watched address is reported, including
// those with no activity.
func Summarize(events []*domain.DecodedEvent, watched watchlist.List, opts Options) domain.CounterpartySummary {
	addresses := watched.Addresses()
	stats := make(map[string]*activity, len(addresses))
	for _, addr := range addresses {
		stats[addr] = &activity{inValue: new(big.Int), outValue: new(big.Int)}
	}

	ledger := make(map[string]*ledgerEntry)
	var order []*ledgerEntry
	touch := func(addr string, v *big.Int) {
		entry, ok := ledger[addr]
		if !ok {
			entry = &ledgerEntry{address: addr, total: new(big.Int)}
			ledger[addr] = entry
			order = append(order, entry)
		}
		entry.interactions++
		entry.total.Add(entry.total, v)
	}

	for _, e := range events {
		if e == nil {
			continue
		}
		from, to := e.Parties()
		value, ok := numeric.Int(e.PrimaryValue())
		if !ok {
			value = new(big.Int)
		}

		if s, isWatched := stats[from]; isWatched && from != "" {
			s.outCount++
			s.outValue.Add(s.outValue, value)
			if _, w := stats[to]; !w && to != "" {
				touch(to, value)
			}
		}
		if s, isWatched := stats[to]; isWatched && to != "" {
			s.inCount++
			s.inValue.Add(s.inValue, value)
			if _, w := stats[from]; !w && from != "" {
				touch(from, value)
			}
		}
	}

	summary := domain.CounterpartySummary{
		Watched:        make([]domain.WatchedActivity, 0, len(addresses)),
		Counterparties: make([]domain.Counterparty, 0, len(order)),
	}
	for _, addr := range addresses {
		s := stats[addr]
		summary.Watched = append(summary.Watched, domain.WatchedActivity{
			Address:  addr,
			InCount:  s.inCount,
			OutCount: s.outCount,
			InValue:  domain.NewAmount(s.inValue),
			OutValue: domain.NewAmount(s.outValue),
		})
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].total.Cmp(order[j].total) > 0
	})
	for _, entry := range order {
		summary.Counterparties = append(summary.Counterparties, domain.Counterparty{
			Address:      entry.address,
			Interactions: entry.interactions,
			TotalValue:   domain.NewAmount(entry.total),
			TotalUnits:   Units(entry.total, opts.Decimals),
		})
	}
	return summary
}

// Units renders raw as a decimal token amount with the given precision.
func Units(raw *big.Int, decimals int32) string {
	if raw == nil {
		return "0"
	}
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromBigInt(raw, -decimals).String()
}
