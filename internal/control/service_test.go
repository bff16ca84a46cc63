package control

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vietddude/sniffer/internal/analysis"
	"github.com/vietddude/sniffer/internal/core/config"
	"github.com/vietddude/sniffer/internal/core/domain"
)

type recordingEmitter struct {
	reports []*domain.Report
	err     error
	closed  bool
}

func (r *recordingEmitter) Emit(ctx context.Context, report *domain.Report) error {
	r.reports = append(r.reports, report)
	return r.err
}

func (r *recordingEmitter) Close() error {
	r.closed = true
	return nil
}

func mustAmount(t *testing.T, s string) domain.Amount {
	t.Helper()
	a, err := domain.ParseAmount(s)
	if err != nil {
		t.Fatalf("ParseAmount(%q): %v", s, err)
	}
	return a
}

func defaultAnalysis() config.AnalysisConfig {
	return config.Default().Analysis
}

const largeWalletBody = `{
	"addresses": ["0xA"],
	"payload": {
		"decoded_logs": [
			{"indexed": [{"val": "0xa"}, {"val": "0xb"}], "body": [{"val": "2000000000000000000"}]}
		]
	}
}`

func TestService_HandleWalletEmitsAlerts(t *testing.T) {
	em := &recordingEmitter{}
	s := NewService(defaultAnalysis(), em)

	report, err := s.Handle(context.Background(), analysis.KindWallet, strings.NewReader(largeWalletBody))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if report.Summary.Verdict != domain.VerdictSuspectedFraud || report.Summary.Severity != domain.SeverityHigh {
		t.Errorf("expected suspected_fraud/high, got %s/%s", report.Summary.Verdict, report.Summary.Severity)
	}
	if len(em.reports) != 1 || em.reports[0] != report {
		t.Errorf("expected the report to be emitted once, got %d", len(em.reports))
	}
}

func TestService_ConfiguredDefaultsApply(t *testing.T) {
	defaults := defaultAnalysis()
	defaults.Wallet.LargeTransferThreshold = mustAmount(t, "10000000000000000000")
	s := NewService(defaults, &recordingEmitter{})

	report, err := s.HandleBytes(context.Background(), analysis.KindWallet, []byte(largeWalletBody))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(report.Alerts) != 0 {
		t.Errorf("expected the raised threshold to suppress the alert, got %+v", report.Alerts)
	}

	body := strings.Replace(largeWalletBody, `"addresses"`, `"options": {"large_transfer_threshold": "1"}, "addresses"`, 1)
	report, err = s.HandleBytes(context.Background(), analysis.KindWallet, []byte(body))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(report.Alerts) != 1 || report.Alerts[0].Type != domain.FindingLargeTransfer {
		t.Errorf("expected request override to raise one alert, got %+v", report.Alerts)
	}
}

func TestService_RequestsDoNotShareDefaults(t *testing.T) {
	defaults := defaultAnalysis()
	notional := domain.AmountFromInt64(1000)
	defaults.Swaps.MinNotional = &notional
	defaults.Transaction.Watchlist = []string{"0xwatched"}
	s := NewService(defaults, nil)

	swaps := `{"pool_address": "0xpool", "options": {"min_notional": "5"}}`
	if _, err := s.HandleBytes(context.Background(), analysis.KindSwaps, []byte(swaps)); err != nil {
		t.Fatalf("swaps: %v", err)
	}
	tx := `{"tx_hash": "0xhash", "options": {"watchlist": ["0xother"]}}`
	if _, err := s.HandleBytes(context.Background(), analysis.KindTransaction, []byte(tx)); err != nil {
		t.Fatalf("transaction: %v", err)
	}

	if got := s.NewSwapRequest().Options.MinNotional.String(); got != "1000" {
		t.Errorf("expected min notional default 1000, got %s", got)
	}
	if got := s.NewTransactionRequest().Options.Watchlist; len(got) != 1 || got[0] != "0xwatched" {
		t.Errorf("expected watchlist default kept, got %v", got)
	}
}

func TestService_Errors(t *testing.T) {
	em := &recordingEmitter{}
	s := NewService(defaultAnalysis(), em)
	ctx := context.Background()

	tests := []struct {
		name string
		kind string
		body string
		want error
	}{
		{"unknown kind", "blocks", `{}`, analysis.ErrUnknownKind},
		{"malformed", analysis.KindSwaps, `{`, analysis.ErrMalformedRequest},
		{"no addresses", analysis.KindWallet, `{"addresses": []}`, analysis.ErrNoAddresses},
		{"missing contract", analysis.KindEvents, `{}`, analysis.ErrMissingArgument},
		{"block range", analysis.KindEvents, `{"contract": "0xt", "start_block": 9, "end_block": 1}`, analysis.ErrInvalidBlockRange},
		{"missing hash", analysis.KindTransaction, `{}`, analysis.ErrMissingArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.HandleBytes(ctx, tt.kind, []byte(tt.body)); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(em.reports) != 0 {
		t.Errorf("expected nothing emitted for rejected requests, got %d", len(em.reports))
	}
}

func TestService_EmitFailureKeepsReport(t *testing.T) {
	em := &recordingEmitter{err: errors.New("sink down")}
	s := NewService(defaultAnalysis(), em)

	report, err := s.HandleBytes(context.Background(), analysis.KindWallet, []byte(largeWalletBody))
	if err != nil {
		t.Fatalf("expected emit failure not to fail the analysis, got %v", err)
	}
	if len(report.Alerts) != 1 {
		t.Errorf("expected 1 alert, got %d", len(report.Alerts))
	}

	if err := s.Close(); err != nil || !em.closed {
		t.Errorf("expected emitter closed, err=%v", err)
	}
}
