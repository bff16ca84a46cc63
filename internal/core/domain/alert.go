package domain

// Severity grades an alert.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities; unknown values rank as low.
func (s Severity) Rank() int {
	switch s {
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return 0
	}
}

// DefaultSeverity returns the fixed severity for a finding kind.
func DefaultSeverity(kind FindingKind) Severity {
	switch kind {
	case FindingLargeTransfer, FindingPriceImpact, FindingWashTradePair, FindingTrend:
		return SeverityHigh
	case FindingValueAnomaly, FindingCentrality, FindingSelfTransfer, FindingZeroValue, FindingTransactionRisk:
		return SeverityMedium
	default:
		return SeverityMedium
	}
}

// SeverityOf resolves a finding's severity: explicit override first, then the default table.
func SeverityOf(f Finding) Severity {
	if s := f.Severity(); s != "" {
		return s
	}
	return DefaultSeverity(f.Kind())
}

// Verdict is the outcome of an analysis or of a single alert.
type Verdict string

const (
	VerdictClear          Verdict = "clear"
	VerdictSuspectedFraud Verdict = "suspected_fraud"
)

// Alert is a presentation-ready wrapper over a Finding.
type Alert struct {
	ID       string      `json:"id"`
	Type     FindingKind `json:"type"`
	Address  *string     `json:"address"`
	Severity Severity    `json:"severity"`
	Verdict  Verdict     `json:"verdict"`
	Details  Finding     `json:"details"`
}
