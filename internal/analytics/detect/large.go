package detect

import (
	"math/big"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultLargeTransferThreshold returns 10^18, one whole token at 18 decimals.
func DefaultLargeTransferThreshold() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
}

// LargeTransfers flags events whose amount is at least minValue.
// A nil minValue uses DefaultLargeTransferThreshold. Unparsable amounts are skipped.
func LargeTransfers(events []*domain.DecodedEvent, minValue *big.Int) []domain.LargeTransfer {
	if minValue == nil {
		minValue = DefaultLargeTransferThreshold()
	}
	threshold := domain.NewAmount(minValue)

	var findings []domain.LargeTransfer
	for i, e := range events {
		if e == nil {
			continue
		}
		n, ok := numeric.Int(e.PrimaryValue())
		if !ok || n.Cmp(minValue) < 0 {
			continue
		}
		from, to := e.Parties()
		findings = append(findings, domain.LargeTransfer{
			Index:     i,
			Event:     e,
			Value:     domain.NewAmount(n),
			Threshold: threshold,
			Sender:    from,
			Receiver:  to,
		})
	}
	return findings
}
