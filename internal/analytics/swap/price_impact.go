// Package swap analyzes AMM swap events: price-impact spikes between consecutive
// swaps and repeated bidirectional trading between the same two parties.
package swap

import (
	"math"
	"math/big"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultMinPriceDeltaBps is the smallest price move, in basis points, that is flagged.
const DefaultMinPriceDeltaBps = 50.0

const pricePrecision = 256

// q96 is 2^96, the fixed-point scale of sqrtPriceX96.
var q96 = new(big.Float).SetPrec(pricePrecision).SetInt(new(big.Int).Lsh(big.NewInt(1), 96))

// PriceImpactOptions configures PriceImpact.
type PriceImpactOptions struct {
	MinDeltaBps float64
	// MinNotional skips swaps where max(|amount0|, |amount1|) is below it. Nil disables the filter.
	MinNotional *big.Int
}

// DefaultPriceImpactOptions returns the analyzer defaults.
func DefaultPriceImpactOptions() PriceImpactOptions {
	return PriceImpactOptions{MinDeltaBps: DefaultMinPriceDeltaBps}
}

// SwapFields is the decoded body of a swap event.
type SwapFields struct {
	Amount0      *big.Int
	Amount1      *big.Int
	SqrtPriceX96 *big.Int
	Liquidity    *big.Int
}

// IsSwapShaped reports whether e has the minimum indexed and body arity of a swap.
func IsSwapShaped(e *domain.DecodedEvent) bool {
	return e != nil && len(e.Indexed) >= 3 && len(e.Body) >= 4
}

// DecodeSwap decodes amount0, amount1, sqrtPriceX96 and liquidity.
// ok is false when the event is not swap-shaped or any field fails to parse.
func DecodeSwap(e *domain.DecodedEvent) (SwapFields, bool) {
	if !IsSwapShaped(e) {
		return SwapFields{}, false
	}
	var (
		f  SwapFields
		ok bool
	)
	if f.Amount0, ok = numeric.Int(e.Body[0]); !ok {
		return SwapFields{}, false
	}
	if f.Amount1, ok = numeric.Int(e.Body[1]); !ok {
		return SwapFields{}, false
	}
	if f.SqrtPriceX96, ok = numeric.Int(e.Body[2]); !ok {
		return SwapFields{}, false
	}
	if f.Liquidity, ok = numeric.Int(e.Body[3]); !ok {
		return SwapFields{}, false
	}
	return f, true
}

// Price returns (sqrtPriceX96 / 2^96)^2.
func Price(sqrtPriceX96 *big.Int) float64 {
	ratio := new(big.Float).SetPrec(pricePrecision).SetInt(sqrtPriceX96)
	ratio.Quo(ratio, q96)
	ratio.Mul(ratio, ratio)
	p, _ := ratio.Float64()
	return p
}

// PriceImpact flags swaps whose implied price moved at least MinDeltaBps from
// the previous valid swap.
//
// events must be in execution order: the previous price is carried from one
// valid swap to the next. The first valid swap only seeds it. Swaps that fail to
// decode, have zero liquidity or fall under MinNotional leave it untouched.
func PriceImpact(events []*domain.DecodedEvent, opts PriceImpactOptions) []domain.PriceImpact {
	var (
		findings []domain.PriceImpact
		previous float64
		seeded   bool
	)
	for i, e := range events {
		f, ok := DecodeSwap(e)
		if !ok || f.Liquidity.Sign() == 0 {
			continue
		}
		if opts.MinNotional != nil && notional(f).Cmp(opts.MinNotional) < 0 {
			continue
		}

		price := Price(f.SqrtPriceX96)
		if !seeded || previous == 0 {
			previous = price
			seeded = true
			continue
		}

		deltaBps := math.Abs(price-previous) / previous * 10_000
		if deltaBps >= opts.MinDeltaBps {
			from, _ := e.Sender()
			to, _ := e.Receiver()
			findings = append(findings, domain.PriceImpact{
				Index:         i,
				Event:         e,
				Sender:        from,
				Recipient:     to,
				Amount0:       domain.NewAmount(f.Amount0),
				Amount1:       domain.NewAmount(f.Amount1),
				SqrtPriceX96:  domain.NewAmount(f.SqrtPriceX96),
				Liquidity:     domain.NewAmount(f.Liquidity),
				Price:         price,
				PreviousPrice: previous,
				DeltaBps:      deltaBps,
			})
		}
		previous = price
	}
	return findings
}

func notional(f SwapFields) *big.Int {
	a0 := numeric.Abs(f.Amount0)
	a1 := numeric.Abs(f.Amount1)
	if a0.Cmp(a1) >= 0 {
		return a0
	}
	return a1
}
