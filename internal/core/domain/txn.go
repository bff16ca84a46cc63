package domain

import "strings"

// Transaction is a raw chain transaction as returned by the fetch layer.
// Value and BlockNumber are usually hex-encoded upstream.
type Transaction struct {
	Hash             string `json:"hash"`
	BlockNumber      Value  `json:"block_number"`
	TransactionIndex Value  `json:"transaction_index,omitempty"`
	From             string `json:"from"`
	To               string `json:"to,omitempty"`
	Value            Value  `json:"value"`
	Input            string `json:"input,omitempty"`
	GasUsed          Value  `json:"gas_used,omitempty"`
}

// FromAddress returns the lower-cased sender.
func (t *Transaction) FromAddress() string {
	return strings.ToLower(strings.TrimSpace(t.From))
}

// ToAddress returns the lower-cased recipient, empty for contract creation.
func (t *Transaction) ToAddress() string {
	return strings.ToLower(strings.TrimSpace(t.To))
}

// RiskFlag labels a transaction with one reason for review.
type RiskFlag string

const (
	RiskFlagSenderWatchlist    RiskFlag = "sender_watchlist"
	RiskFlagRecipientWatchlist RiskFlag = "recipient_watchlist"
	RiskFlagLargeValue         RiskFlag = "large_value"
)

// LabeledTransaction is a transaction enriched with its decoded method and risk flags.
type LabeledTransaction struct {
	Transaction
	Selector  string     `json:"selector,omitempty"`
	Method    *string    `json:"method"`
	RiskFlags []RiskFlag `json:"risk_flags"`
}

// HasFlag reports whether f was attached.
func (t *LabeledTransaction) HasFlag(f RiskFlag) bool {
	for _, flag := range t.RiskFlags {
		if flag == f {
			return true
		}
	}
	return false
}
