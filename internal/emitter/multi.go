package emitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/metrics"
)

type sink struct {
	name    string
	emitter Emitter
}

// Multi fans a report out to several named emitters. A failing sink does not
// stop the others; their errors are joined.
type Multi struct {
	sinks []sink
}

// NewMulti creates an empty fan-out.
func NewMulti() *Multi {
	return &Multi{}
}

// Add registers an emitter under name, used in logs and metrics.
func (m *Multi) Add(name string, e Emitter) {
	m.sinks = append(m.sinks, sink{name: name, emitter: e})
}

// Len returns the number of sinks.
func (m *Multi) Len() int {
	return len(m.sinks)
}

// Emit sends the report to every sink.
func (m *Multi) Emit(ctx context.Context, report *domain.Report) error {
	if report == nil || len(report.Alerts) == 0 {
		return nil
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.emitter.Emit(ctx, report); err != nil {
			metrics.EmitErrors.WithLabelValues(s.name).Inc()
			slog.Warn("Failed to emit alerts", "sink", s.name, "alerts", len(report.Alerts), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.emitter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
