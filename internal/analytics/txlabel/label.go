// Package txlabel decodes transaction method selectors and attaches watchlist
// and large-value risk flags.
package txlabel

import (
	"math/big"
	"strings"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/core/watchlist"
)

// selectorLen is "0x" plus four bytes of hex.
const selectorLen = 10

// DefaultLargeValueThreshold returns 10^20 wei.
func DefaultLargeValueThreshold() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)
}

// Resolver maps a selector to a method name.
type Resolver interface {
	Resolve(selector string) (string, bool)
}

// Selector returns the lower-cased first 10 characters of input.
func Selector(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if len(input) < selectorLen {
		return "", false
	}
	return strings.ToLower(input[:selectorLen]), true
}

// Wrap converts raw transactions into unlabeled ones.
func Wrap(txs []domain.Transaction) []domain.LabeledTransaction {
	out := make([]domain.LabeledTransaction, len(txs))
	for i := range txs {
		out[i] = domain.LabeledTransaction{Transaction: txs[i], RiskFlags: []domain.RiskFlag{}}
	}
	return out
}

// DecodeMethods attaches the selector and resolved method name of each
// transaction. lookup is consulted first and the built-in registry second; a
// nil lookup uses the registry only. Short inputs get neither.
func DecodeMethods(txs []domain.Transaction, lookup Resolver) []domain.LabeledTransaction {
	out := Wrap(txs)
	for i := range out {
		sel, ok := Selector(out[i].Input)
		if !ok {
			continue
		}
		out[i].Selector = sel
		if name, ok := resolve(lookup, sel); ok {
			out[i].Method = &name
		}
	}
	return out
}

func resolve(lookup Resolver, sel string) (string, bool) {
	if lookup != nil {
		if name, ok := lookup.Resolve(sel); ok {
			return name, true
		}
	}
	return builtin.Resolve(sel)
}

// LabelRisk returns a copy of txs with sender_watchlist, recipient_watchlist and
// large_value flags attached. A nil threshold uses DefaultLargeValueThreshold;
// transactions whose value does not parse never get large_value.
func LabelRisk(txs []domain.LabeledTransaction, watched watchlist.Matcher, threshold *big.Int) []domain.LabeledTransaction {
	if threshold == nil {
		threshold = DefaultLargeValueThreshold()
	}
	out := make([]domain.LabeledTransaction, len(txs))
	for i, tx := range txs {
		flags := make([]domain.RiskFlag, 0, 3)
		if watched != nil {
			if from := tx.FromAddress(); from != "" && watched.Contains(from) {
				flags = append(flags, domain.RiskFlagSenderWatchlist)
			}
			if to := tx.ToAddress(); to != "" && watched.Contains(to) {
				flags = append(flags, domain.RiskFlagRecipientWatchlist)
			}
		}
		if v, ok := numeric.Int(tx.Value); ok && v.Cmp(threshold) >= 0 {
			flags = append(flags, domain.RiskFlagLargeValue)
		}
		tx.RiskFlags = flags
		out[i] = tx
	}
	return out
}
