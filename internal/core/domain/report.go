package domain

import "time"

// Summary holds the scalar results of one analysis call.
// Only the fields relevant to the analysis kind are populated.
type Summary struct {
	Kind              string   `json:"kind"`
	Addresses         []string `json:"addresses,omitempty"`
	Contract          string   `json:"contract,omitempty"`
	PoolAddress       string   `json:"pool_address,omitempty"`
	Topic0            string   `json:"topic0,omitempty"`
	TxHash            string   `json:"tx_hash,omitempty"`
	StartBlock        *uint64  `json:"start_block,omitempty"`
	EndBlock          *uint64  `json:"end_block,omitempty"`
	NextBlock         *uint64  `json:"next_block"`
	ArchiveHeight     *uint64  `json:"archive_height"`
	TotalLogs         int      `json:"total_logs"`
	TotalTransactions int      `json:"total_transactions"`
	AlertCount        int      `json:"alert_count"`
	Verdict           Verdict  `json:"verdict"`
	Severity          Severity `json:"severity"`
}

// Report is the structured response of an analysis orchestrator.
type Report struct {
	Summary Summary `json:"summary"`
	Alerts  []Alert `json:"alerts"`
	Metrics any     `json:"metrics"`
	Raw     any     `json:"raw"`
}

// RiskFactor is one contribution to a risk score.
type RiskFactor struct {
	Kind   FindingKind `json:"kind"`
	Points int         `json:"points"`
	Detail string      `json:"detail"`
}

// RiskScore is the composite 0-100 score of a watched address.
type RiskScore struct {
	Address string       `json:"address"`
	Score   int          `json:"score"`
	Factors []RiskFactor `json:"factors"`
}

// WatchedActivity aggregates a watched address's inbound and outbound transfers.
type WatchedActivity struct {
	Address  string `json:"address"`
	InCount  int    `json:"in_count"`
	OutCount int    `json:"out_count"`
	InValue  Amount `json:"in_value"`
	OutValue Amount `json:"out_value"`
}

// Counterparty is an external address that interacted with the watchlist.
type Counterparty struct {
	Address      string `json:"address"`
	Interactions int    `json:"interactions"`
	TotalValue   Amount `json:"total_value"`
	TotalUnits   string `json:"total_units"`
}

// CounterpartySummary is the output of the counterparty summarizer.
type CounterpartySummary struct {
	Watched        []WatchedActivity `json:"watched"`
	Counterparties []Counterparty    `json:"counterparties"`
}

// AlertMessage is the envelope published to alert sinks, one per alert.
type AlertMessage struct {
	Analysis  string    `json:"analysis"`
	Verdict   Verdict   `json:"verdict"`
	Alert     Alert     `json:"alert"`
	EmittedAt time.Time `json:"emitted_at"`
}

// AlertMessages wraps every alert of r.
func AlertMessages(r *Report, at time.Time) []AlertMessage {
	if r == nil {
		return nil
	}
	out := make([]AlertMessage, 0, len(r.Alerts))
	for _, a := range r.Alerts {
		out = append(out, AlertMessage{
			Analysis:  r.Summary.Kind,
			Verdict:   r.Summary.Verdict,
			Alert:     a,
			EmittedAt: at,
		})
	}
	return out
}
