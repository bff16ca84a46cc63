package control

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vietddude/sniffer/internal/analysis"
	"github.com/vietddude/sniffer/internal/core/config"
	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/emitter"
	"github.com/vietddude/sniffer/internal/metrics"
)

const tracerName = "github.com/vietddude/sniffer/internal/control"

// Service hosts the analysis orchestrators. It fills requests from the
// configured defaults, records metrics and a span per analysis, and hands
// every report with alerts to the emitter.
type Service struct {
	defaults config.AnalysisConfig
	emitter  emitter.Emitter
	tracer   trace.Tracer
	log      *slog.Logger
}

// NewService creates a service. A nil emitter discards alerts.
func NewService(defaults config.AnalysisConfig, em emitter.Emitter) *Service {
	if em == nil {
		em = emitter.NewMulti()
	}
	return &Service{
		defaults: defaults,
		emitter:  em,
		tracer:   otel.Tracer(tracerName),
		log:      slog.Default().With("component", "analysis"),
	}
}

// NewWalletRequest returns a wallet request holding the configured defaults.
func (s *Service) NewWalletRequest() analysis.WalletRequest {
	req := analysis.NewWalletRequest()
	req.Options = s.defaults.Wallet
	return req
}

// NewEventRequest returns an event request holding the configured defaults.
func (s *Service) NewEventRequest() analysis.EventRequest {
	req := analysis.NewEventRequest()
	req.Options = s.defaults.Events
	return req
}

// NewSwapRequest returns a swap request holding the configured defaults.
func (s *Service) NewSwapRequest() analysis.SwapRequest {
	req := analysis.NewSwapRequest()
	req.Options = s.defaults.Swaps
	if n := req.Options.MinNotional; n != nil {
		// Decoding into a shared pointer would rewrite the defaults.
		copied := *n
		req.Options.MinNotional = &copied
	}
	return req
}

// NewTransactionRequest returns a transaction request holding the configured defaults.
func (s *Service) NewTransactionRequest() analysis.TransactionRequest {
	req := analysis.NewTransactionRequest()
	req.Options = s.defaults.Transaction
	req.Options.Watchlist = slices.Clone(req.Options.Watchlist)
	return req
}

// AnalyzeWallet runs a wallet analysis.
func (s *Service) AnalyzeWallet(ctx context.Context, req analysis.WalletRequest) (*domain.Report, error) {
	return s.run(ctx, analysis.KindWallet, len(req.Payload.DecodedLogs), func() (*domain.Report, error) {
		return analysis.AnalyzeWallet(req)
	})
}

// AnalyzeEvents runs an event-log analysis.
func (s *Service) AnalyzeEvents(ctx context.Context, req analysis.EventRequest) (*domain.Report, error) {
	return s.run(ctx, analysis.KindEvents, len(req.Payload.DecodedLogs), func() (*domain.Report, error) {
		return analysis.AnalyzeEvents(req)
	})
}

// AnalyzeSwaps runs a swap analysis.
func (s *Service) AnalyzeSwaps(ctx context.Context, req analysis.SwapRequest) (*domain.Report, error) {
	return s.run(ctx, analysis.KindSwaps, len(req.Payload.DecodedLogs), func() (*domain.Report, error) {
		return analysis.AnalyzeSwaps(req)
	})
}

// AnalyzeTransaction runs a transaction analysis.
func (s *Service) AnalyzeTransaction(ctx context.Context, req analysis.TransactionRequest) (*domain.Report, error) {
	return s.run(ctx, analysis.KindTransaction, len(req.Payload.Transactions), func() (*domain.Report, error) {
		return analysis.AnalyzeTransaction(req)
	})
}

// Handle decodes a JSON request of the given kind on top of the configured
// defaults and analyzes it.
func (s *Service) Handle(ctx context.Context, kind string, body io.Reader) (*domain.Report, error) {
	switch kind {
	case analysis.KindWallet:
		req := s.NewWalletRequest()
		if err := analysis.Decode(body, &req); err != nil {
			return nil, s.rejected(kind, err)
		}
		return s.AnalyzeWallet(ctx, req)
	case analysis.KindEvents:
		req := s.NewEventRequest()
		if err := analysis.Decode(body, &req); err != nil {
			return nil, s.rejected(kind, err)
		}
		return s.AnalyzeEvents(ctx, req)
	case analysis.KindSwaps:
		req := s.NewSwapRequest()
		if err := analysis.Decode(body, &req); err != nil {
			return nil, s.rejected(kind, err)
		}
		return s.AnalyzeSwaps(ctx, req)
	case analysis.KindTransaction:
		req := s.NewTransactionRequest()
		if err := analysis.Decode(body, &req); err != nil {
			return nil, s.rejected(kind, err)
		}
		return s.AnalyzeTransaction(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", analysis.ErrUnknownKind, kind)
	}
}

// HandleBytes is Handle over an in-memory body.
func (s *Service) HandleBytes(ctx context.Context, kind string, body []byte) (*domain.Report, error) {
	return s.Handle(ctx, kind, bytes.NewReader(body))
}

// Close closes the emitter.
func (s *Service) Close() error {
	return s.emitter.Close()
}

func (s *Service) rejected(kind string, err error) error {
	metrics.AnalysisErrorsTotal.WithLabelValues(kind).Inc()
	return err
}

func (s *Service) run(ctx context.Context, kind string, inputs int, analyze func() (*domain.Report, error)) (*domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "analyze."+kind,
		trace.WithAttributes(
			attribute.String("analysis.kind", kind),
			attribute.Int("analysis.inputs", inputs),
		),
	)
	defer span.End()

	start := time.Now()
	report, err := analyze()
	metrics.AnalysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysisErrorsTotal.WithLabelValues(kind).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Debug("Analysis rejected", "kind", kind, "error", err)
		return nil, err
	}

	metrics.EventsAnalyzed.WithLabelValues(kind).Add(float64(inputs))
	metrics.AnalysesTotal.WithLabelValues(kind, string(report.Summary.Verdict)).Inc()
	for _, a := range report.Alerts {
		metrics.AlertsTotal.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
	}
	span.SetAttributes(
		attribute.String("analysis.verdict", string(report.Summary.Verdict)),
		attribute.Int("analysis.alerts", len(report.Alerts)),
	)

	s.log.Info("Analysis completed",
		"kind", kind,
		"verdict", report.Summary.Verdict,
		"severity", report.Summary.Severity,
		"alerts", len(report.Alerts),
		"inputs", inputs,
		"duration", time.Since(start),
	)

	// Delivery failures are logged by the emitter; the report stands.
	if err := s.emitter.Emit(ctx, report); err != nil {
		s.log.Warn("Alerts not fully delivered", "kind", kind, "error", err)
	}
	return report, nil
}
