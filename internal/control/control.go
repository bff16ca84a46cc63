package control

import (
	"context"
	"time"

	redisclient "github.com/vietddude/sniffer/internal/infra/redis"
)

// JobQueue is the source of queued analysis jobs and the sink for their results.
type JobQueue interface {
	// PopJob blocks up to timeout for the next job. Undecodable payloads
	// return an error wrapping redisclient.ErrInvalidJob.
	PopJob(ctx context.Context, timeout time.Duration) (*redisclient.Job, bool, error)

	// StoreResult keeps a job's report or error for later retrieval
	StoreResult(ctx context.Context, jobID string, result any, ttl time.Duration) error
}

// JobResult is stored under a job's ID once it has been processed.
type JobResult struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Status string `json:"status"` // "done", "failed"
	Error  string `json:"error,omitempty"`
	Report any    `json:"report,omitempty"`
}

// Job statuses.
const (
	JobDone   = "done"
	JobFailed = "failed"
)
