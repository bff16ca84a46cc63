package emitter

import (
	"context"
	"log/slog"

	"github.com/vietddude/sniffer/internal/core/domain"
)

// LogEmitter writes one structured log line per alert.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter logs to logger, or to slog.Default when nil.
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

// Emit implements Emitter.
func (l *LogEmitter) Emit(ctx context.Context, report *domain.Report) error {
	for _, a := range report.Alerts {
		address := ""
		if a.Address != nil {
			address = *a.Address
		}
		l.logger.InfoContext(ctx, "Alert raised",
			"analysis", report.Summary.Kind,
			"id", a.ID,
			"type", a.Type,
			"severity", a.Severity,
			"address", address,
		)
	}
	return nil
}

// Close implements Emitter.
func (l *LogEmitter) Close() error {
	return nil
}
