package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned before any computation.
var (
	ErrNoAddresses       = errors.New("at least one wallet address is required")
	ErrInvalidBlockRange = errors.New("end block must not precede start block")
	ErrMissingArgument   = errors.New("missing required argument")
	ErrMalformedRequest  = errors.New("malformed request")
	ErrUnknownKind       = errors.New("unknown analysis kind")
)

// TransferTopic is topic0 of the ERC-20 Transfer event.
const TransferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

// WalletRequest asks for an analysis of the activity around watched addresses.
type WalletRequest struct {
	Addresses     []string      `json:"addresses"`
	FromBlock     uint64        `json:"from_block"`
	TransferTopic string        `json:"transfer_topic,omitempty"`
	Options       WalletOptions `json:"options"`
	Payload       Payload       `json:"payload"`
}

// NewWalletRequest returns a request holding the default options.
func NewWalletRequest() WalletRequest {
	return WalletRequest{TransferTopic: TransferTopic, Options: DefaultWalletOptions()}
}

func (r *WalletRequest) validate() error {
	for _, a := range r.Addresses {
		if strings.TrimSpace(a) != "" {
			return nil
		}
	}
	return ErrNoAddresses
}

// EventRequest asks for an analysis of one event stream of a contract.
type EventRequest struct {
	Contract   string       `json:"contract"`
	Topic0     string       `json:"topic0"`
	StartBlock uint64       `json:"start_block"`
	EndBlock   uint64       `json:"end_block"`
	Options    EventOptions `json:"options"`
	Payload    Payload      `json:"payload"`
}

// NewEventRequest returns a request holding the default options.
func NewEventRequest() EventRequest {
	return EventRequest{Topic0: TransferTopic, Options: DefaultEventOptions()}
}

func (r *EventRequest) validate() error {
	if strings.TrimSpace(r.Contract) == "" {
		return fmt.Errorf("contract: %w", ErrMissingArgument)
	}
	return checkRange(r.StartBlock, r.EndBlock)
}

// SwapRequest asks for an analysis of the swaps of one pool.
type SwapRequest struct {
	PoolAddress string      `json:"pool_address"`
	Topic0      string      `json:"topic0"`
	StartBlock  uint64      `json:"start_block"`
	EndBlock    uint64      `json:"end_block"`
	Options     SwapOptions `json:"options"`
	Payload     Payload     `json:"payload"`
}

// NewSwapRequest returns a request holding the default options.
func NewSwapRequest() SwapRequest {
	return SwapRequest{Options: DefaultSwapOptions()}
}

func (r *SwapRequest) validate() error {
	if strings.TrimSpace(r.PoolAddress) == "" {
		return fmt.Errorf("pool address: %w", ErrMissingArgument)
	}
	return checkRange(r.StartBlock, r.EndBlock)
}

// TransactionRequest asks for an analysis of one transaction.
type TransactionRequest struct {
	TxHash    string             `json:"tx_hash"`
	FromBlock uint64             `json:"from_block"`
	Options   TransactionOptions `json:"options"`
	Payload   Payload            `json:"payload"`
}

// NewTransactionRequest returns a request holding the default options.
func NewTransactionRequest() TransactionRequest {
	return TransactionRequest{Options: DefaultTransactionOptions()}
}

func (r *TransactionRequest) validate() error {
	if strings.TrimSpace(r.TxHash) == "" {
		return fmt.Errorf("transaction hash: %w", ErrMissingArgument)
	}
	return nil
}

func checkRange(start, end uint64) error {
	if end < start {
		return fmt.Errorf("%w: start %d, end %d", ErrInvalidBlockRange, start, end)
	}
	return nil
}
