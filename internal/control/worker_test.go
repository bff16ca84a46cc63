package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/sniffer/internal/analysis"
	redisclient "github.com/vietddude/sniffer/internal/infra/redis"
)

// stubQueue serves queued jobs, then cancels the worker once drained.
type stubQueue struct {
	mu      sync.Mutex
	jobs    []*redisclient.Job
	popErr  error
	invalid []*redisclient.Job // served as undecodable payloads before jobs
	results map[string]JobResult
	cancel  context.CancelFunc
}

func (q *stubQueue) PopJob(ctx context.Context, timeout time.Duration) (*redisclient.Job, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.popErr != nil {
		err := q.popErr
		q.popErr = nil
		return nil, false, err
	}
	if len(q.invalid) > 0 {
		j := q.invalid[0]
		q.invalid = q.invalid[1:]
		return j, false, fmt.Errorf("%w: missing kind", redisclient.ErrInvalidJob)
	}
	if len(q.jobs) == 0 {
		q.cancel()
		return nil, false, nil
	}
	j := q.jobs[0]
	q.jobs = q.jobs[1:]
	return j, true, nil
}

func (q *stubQueue) StoreResult(ctx context.Context, jobID string, result any, ttl time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results[jobID] = result.(JobResult)
	return nil
}

func TestWorker_ProcessesQueuedJobs(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q := &stubQueue{
		jobs: []*redisclient.Job{
			{ID: "ok", Kind: analysis.KindWallet, Request: json.RawMessage(largeWalletBody)},
			{ID: "bad", Kind: analysis.KindEvents, Request: json.RawMessage(`{}`)},
			{ID: "unknown", Kind: "blocks", Request: json.RawMessage(`{}`)},
		},
		popErr:  errors.New("connection reset"),
		results: make(map[string]JobResult),
		cancel:  cancel,
	}
	cfg := DefaultWorkerConfig()
	cfg.Backoff = Backoff{InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}

	em := &recordingEmitter{}
	w := NewWorker(cfg, q, NewService(defaultAnalysis(), em))
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := q.results["ok"]; got.Status != JobDone || got.Report == nil {
		t.Errorf("expected ok job done with report, got %+v", got)
	}
	if got := q.results["bad"]; got.Status != JobFailed || got.Error == "" {
		t.Errorf("expected bad job failed, got %+v", got)
	}
	if got := q.results["unknown"]; got.Status != JobFailed {
		t.Errorf("expected unknown kind failed, got %+v", got)
	}
	if len(em.reports) != 1 {
		t.Errorf("expected one emitted report, got %d", len(em.reports))
	}
}

func TestWorker_InvalidJobFailsWithoutBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q := &stubQueue{
		invalid: []*redisclient.Job{{ID: "broken"}, nil},
		jobs: []*redisclient.Job{
			{ID: "ok", Kind: analysis.KindWallet, Request: json.RawMessage(largeWalletBody)},
		},
		results: make(map[string]JobResult),
		cancel:  cancel,
	}
	cfg := DefaultWorkerConfig()
	cfg.Backoff = Backoff{InitialDelay: time.Hour, MaxDelay: time.Hour}

	w := NewWorker(cfg, q, NewService(defaultAnalysis(), &recordingEmitter{}))
	start := time.Now()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || time.Since(start) > 4*time.Second {
		t.Fatal("expected invalid jobs to skip the backoff delay")
	}

	got, ok := q.results["broken"]
	if !ok || got.Status != JobFailed || got.Error == "" {
		t.Errorf("expected broken job stored as failed, got %+v", got)
	}
	if got := q.results["ok"]; got.Status != JobDone {
		t.Errorf("expected following job done, got %+v", got)
	}
	if len(q.results) != 2 {
		t.Errorf("expected 2 stored results, got %d", len(q.results))
	}
}

func TestBackoff_Delay(t *testing.T) {
	b := Backoff{InitialDelay: time.Second, MaxDelay: 5 * time.Second}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 5 * time.Second},
		{10, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := b.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
