package detect

import (
	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// SuspiciousPatterns emits a SelfTransfer finding when sender and receiver are
// the same address and a ZeroValue finding when the amount is exactly zero.
// The checks are independent, so one event can yield both.
func SuspiciousPatterns(events []*domain.DecodedEvent) []domain.Finding {
	var findings []domain.Finding
	for i, e := range events {
		if e == nil {
			continue
		}
		from, to := e.Parties()
		if from != "" && from == to {
			findings = append(findings, domain.SelfTransfer{Index: i, Event: e, Address: from})
		}
		if n, ok := numeric.Int(e.PrimaryValue()); ok && n.Sign() == 0 {
			findings = append(findings, domain.ZeroValue{Index: i, Event: e, Sender: from, Receiver: to})
		}
	}
	return findings
}

// FilterPatterns keeps the pattern findings whose kind is enabled.
func FilterPatterns(findings []domain.Finding, includeSelfTransfers, includeZeroValue bool) []domain.Finding {
	var kept []domain.Finding
	for _, f := range findings {
		switch f.Kind() {
		case domain.FindingSelfTransfer:
			if includeSelfTransfers {
				kept = append(kept, f)
			}
		case domain.FindingZeroValue:
			if includeZeroValue {
				kept = append(kept, f)
			}
		}
	}
	return kept
}
