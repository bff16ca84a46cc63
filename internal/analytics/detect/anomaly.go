// Package detect holds the per-event detectors over transfer-shaped batches:
// value anomalies, large transfers and suspicious patterns.
package detect

import (
	"math"
	"math/big"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/analytics/stats"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultZThreshold is the |z| at which a transfer value is anomalous.
const DefaultZThreshold = 2.0

// ValueAnomalies flags events whose amount has |z| >= zThreshold within the batch.
// Events with unparsable amounts, or amounts beyond the float64 range, are left
// out of the population and never flagged.
func ValueAnomalies(events []*domain.DecodedEvent, zThreshold float64) []domain.ValueAnomaly {
	type sample struct {
		index int
		event *domain.DecodedEvent
		value *big.Int
	}

	samples := make([]sample, 0, len(events))
	values := make([]float64, 0, len(events))
	for i, e := range events {
		if e == nil {
			continue
		}
		n, ok := numeric.Int(e.PrimaryValue())
		if !ok {
			continue
		}
		f, ok := numeric.Float(n)
		if !ok {
			continue
		}
		samples = append(samples, sample{index: i, event: e, value: n})
		values = append(values, f)
	}

	var findings []domain.ValueAnomaly
	for i, z := range stats.ZScores(values) {
		if math.Abs(z) < zThreshold {
			continue
		}
		s := samples[i]
		from, to := s.event.Parties()
		findings = append(findings, domain.ValueAnomaly{
			Index:    s.index,
			Event:    s.event,
			Value:    domain.NewAmount(s.value),
			ZScore:   z,
			Sender:   from,
			Receiver: to,
		})
	}
	return findings
}
