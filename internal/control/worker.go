package control

import (
	"context"
	"errors"
	"log/slog"
	"time"

	redisclient "github.com/vietddude/sniffer/internal/infra/redis"
	"github.com/vietddude/sniffer/internal/metrics"
)

// WorkerConfig holds configuration for the job worker.
type WorkerConfig struct {
	PopTimeout time.Duration // BRPOP wait per poll (default: 5s)
	ResultTTL  time.Duration // Lifetime of stored results (default: 1h)
	Backoff    Backoff       // Sleep after consecutive queue errors
}

// DefaultWorkerConfig returns default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PopTimeout: 5 * time.Second,
		ResultTTL:  time.Hour,
		Backoff:    DefaultBackoff(),
	}
}

// Worker analyzes jobs queued by the fetch layer.
type Worker struct {
	cfg     WorkerConfig
	queue   JobQueue
	service *Service
	log     *slog.Logger
}

// NewWorker creates a job worker.
func NewWorker(cfg WorkerConfig, queue JobQueue, service *Service) *Worker {
	return &Worker{
		cfg:     cfg,
		queue:   queue,
		service: service,
		log:     slog.Default().With("component", "worker"),
	}
}

// Run pops and processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("Starting job worker")

	failures := 0
	for {
		select {
		case <-ctx.Done():
			w.log.Info("Job worker stopped")
			return nil
		default:
		}

		job, found, err := w.queue.PopJob(ctx, w.cfg.PopTimeout)
		if errors.Is(err, redisclient.ErrInvalidJob) {
			failures = 0
			w.rejectJob(ctx, job, err)
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			delay := w.cfg.Backoff.Delay(failures)
			failures++
			w.log.Error("Failed to pop job", "error", err, "retryIn", delay)
			sleep(ctx, delay)
			continue
		}
		failures = 0
		if !found {
			continue
		}

		result := JobResult{ID: job.ID, Kind: job.Kind, Status: JobDone}
		report, err := w.service.HandleBytes(ctx, job.Kind, job.Request)
		if err != nil {
			w.log.Warn("Job failed", "id", job.ID, "kind", job.Kind, "error", err)
			result.Status = JobFailed
			result.Error = err.Error()
		} else {
			result.Report = report
		}
		metrics.JobsProcessed.WithLabelValues(job.Kind, result.Status).Inc()

		if err := w.queue.StoreResult(ctx, job.ID, result, w.cfg.ResultTTL); err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			w.log.Warn("Failed to store job result", "id", job.ID, "error", err)
		}
	}
}

// rejectJob records a payload that could not be decoded. The result is
// stored only when the job ID was recovered.
func (w *Worker) rejectJob(ctx context.Context, job *redisclient.Job, err error) {
	kind := "unknown"
	if job != nil && job.Kind != "" {
		kind = job.Kind
	}
	metrics.JobsProcessed.WithLabelValues(kind, JobFailed).Inc()
	if job == nil || job.ID == "" {
		w.log.Warn("Dropped undecodable job", "error", err)
		return
	}
	w.log.Warn("Job rejected", "id", job.ID, "error", err)
	result := JobResult{ID: job.ID, Kind: job.Kind, Status: JobFailed, Error: err.Error()}
	if err := w.queue.StoreResult(ctx, job.ID, result, w.cfg.ResultTTL); err != nil {
		w.log.Warn("Failed to store job result", "id", job.ID, "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
