package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vietddude/sniffer/internal/core/domain"
)

type stubWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *stubWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

func testReport() *domain.Report {
	addr := "0xa"
	return &domain.Report{
		Summary: domain.Summary{Kind: "wallet", Verdict: domain.VerdictSuspectedFraud},
		Alerts: []domain.Alert{
			{ID: "centrality_1", Type: domain.FindingCentrality, Address: &addr, Severity: domain.SeverityMedium, Details: domain.Centrality{Address: addr, Degree: 4}},
			{ID: "wash_trade_pair_2", Type: domain.FindingWashTradePair, Severity: domain.SeverityHigh, Details: domain.WashTradePair{Swaps: 3}},
		},
	}
}

func TestProducer_Emit(t *testing.T) {
	w := &stubWriter{}
	p := NewProducerWithWriter(w, "")
	p.now = func() time.Time { return time.Unix(1700000000, 0) }

	if err := p.Emit(context.Background(), testReport()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(w.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(w.messages))
	}
	if w.messages[0].Topic != DefaultTopic {
		t.Errorf("expected default topic, got %s", w.messages[0].Topic)
	}
	if string(w.messages[0].Key) != "0xa" || string(w.messages[1].Key) != "wash_trade_pair" {
		t.Errorf("unexpected keys %q, %q", w.messages[0].Key, w.messages[1].Key)
	}

	var msg struct {
		Analysis string `json:"analysis"`
		Alert    struct {
			ID      string         `json:"id"`
			Details map[string]any `json:"details"`
		} `json:"alert"`
	}
	if err := json.Unmarshal(w.messages[0].Value, &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.Analysis != "wallet" || msg.Alert.ID != "centrality_1" || msg.Alert.Details["degree"] != float64(4) {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestProducer_EmitNoAlerts(t *testing.T) {
	w := &stubWriter{err: errors.New("must not be called")}
	p := NewProducerWithWriter(w, "alerts")
	if err := p.Emit(context.Background(), &domain.Report{}); err != nil {
		t.Errorf("expected no write for an empty report, got %v", err)
	}
}

func TestProducer_EmitWriteError(t *testing.T) {
	w := &stubWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, "alerts")
	if err := p.Emit(context.Background(), testReport()); err == nil {
		t.Error("expected write error")
	}
	if err := p.Close(); err != nil || !w.closed {
		t.Error("expected writer to be closed")
	}
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	if _, err := NewProducer(Config{}); err == nil {
		t.Error("expected error without brokers")
	}
}
