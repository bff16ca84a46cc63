package counterparty

import (
	"math/big"

	"github.com/vietddude/sniffer/internal/analytics/numeric"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// Volumes is the gross traffic per address: every transfer adds its value to
// both sides.
type Volumes struct {
	ERC20 map[string]domain.Amount `json:"erc20_volume"`
	Wei   map[string]domain.Amount `json:"wei_volume"`
}

// CollectVolumes builds the token ledger from transfer events and the native
// ledger from transaction values. Unparsable values count as zero; contract
// creations only credit the sender.
func CollectVolumes(events []*domain.DecodedEvent, txs []domain.Transaction) Volumes {
	erc20 := make(map[string]*big.Int)
	for _, e := range events {
		if e == nil {
			continue
		}
		from, okFrom := e.Sender()
		to, okTo := e.Receiver()
		if !okFrom || !okTo {
			continue
		}
		value, ok := numeric.Int(e.PrimaryValue())
		if !ok {
			value = new(big.Int)
		}
		credit(erc20, from, value)
		credit(erc20, to, value)
	}

	wei := make(map[string]*big.Int)
	for i := range txs {
		from := txs[i].FromAddress()
		if from == "" {
			continue
		}
		value, ok := numeric.Int(txs[i].Value)
		if !ok {
			value = new(big.Int)
		}
		credit(wei, from, value)
		if to := txs[i].ToAddress(); to != "" {
			credit(wei, to, value)
		}
	}

	return Volumes{ERC20: toAmounts(erc20), Wei: toAmounts(wei)}
}

func credit(ledger map[string]*big.Int, addr string, v *big.Int) {
	total, ok := ledger[addr]
	if !ok {
		total = new(big.Int)
		ledger[addr] = total
	}
	total.Add(total, v)
}

func toAmounts(ledger map[string]*big.Int) map[string]domain.Amount {
	out := make(map[string]domain.Amount, len(ledger))
	for addr, v := range ledger {
		out[addr] = domain.NewAmount(v)
	}
	return out
}
