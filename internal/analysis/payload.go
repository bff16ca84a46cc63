package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/vietddude/sniffer/internal/core/domain"
)

// Payload is the pre-fetched result of the upstream indexer query.
// Logs are carried opaquely and only counted; DecodedLogs and Transactions
// feed the detectors.
type Payload struct {
	NextBlock     *uint64                `json:"next_block"`
	ArchiveHeight *uint64                `json:"archive_height"`
	Logs          []any                  `json:"logs"`
	Transactions  []domain.Transaction   `json:"transactions"`
	DecodedLogs   []*domain.DecodedEvent `json:"decoded_logs"`
}

// Raw returns the payload ready for pass-through in a Report. Opaque integers
// outside the signed 64-bit range become decimal strings.
func (p Payload) Raw() Payload {
	if p.Logs != nil {
		logs := make([]any, len(p.Logs))
		for i, l := range p.Logs {
			logs[i] = Sanitize(l)
		}
		p.Logs = logs
	}
	return p
}

// Sanitize walks decoded JSON and replaces integers that do not fit in int64
// with their decimal string.
func Sanitize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Sanitize(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Sanitize(item)
		}
		return out
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		if n, ok := new(big.Int).SetString(t.String(), 10); ok {
			return n.String()
		}
		return t
	default:
		return v
	}
}

// Decode reads one JSON request into dst, keeping numbers exact.
// dst should already hold defaults; fields absent from the input keep them.
func Decode(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request: %w: %w", ErrMalformedRequest, err)
	}
	return nil
}
