package emitter

import (
	"context"

	"github.com/vietddude/sniffer/internal/core/domain"
)

// Emitter defines the interface for publishing analysis alerts
type Emitter interface {
	// Emit sends every alert of a report
	Emit(ctx context.Context, report *domain.Report) error

	// Close closes the emitter connection
	Close() error
}
