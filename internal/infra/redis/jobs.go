package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrInvalidJob marks a queued payload that is not a decodable job.
var ErrInvalidJob = errors.New("invalid job payload")

// Job is one analysis request queued by the fetch layer.
type Job struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Request json.RawMessage `json:"request"`
}

// EncodeJob serializes j, assigning an ID when it has none.
func EncodeJob(j *Job) ([]byte, error) {
	if j.Kind == "" {
		return nil, errors.New("job kind is required")
	}
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return json.Marshal(j)
}

// DecodeJob parses a queued job. Errors wrap ErrInvalidJob and come with
// whatever job ID could still be read, or a nil job.
func DecodeJob(data []byte) (*Job, error) {
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return recoverID(data), fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	if j.Kind == "" {
		return &j, fmt.Errorf("%w: missing kind", ErrInvalidJob)
	}
	return &j, nil
}

func recoverID(data []byte) *Job {
	var partial struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &partial); err != nil || partial.ID == "" {
		return nil
	}
	return &Job{ID: partial.ID}
}

// PushJob appends a job to the head of the queue.
func (c *Client) PushJob(ctx context.Context, j *Job) error {
	data, err := EncodeJob(j)
	if err != nil {
		return err
	}
	if err := c.rdb.LPush(ctx, c.queue, data).Err(); err != nil {
		return fmt.Errorf("lpush failed: %w", err)
	}
	return nil
}

// PopJob blocks up to timeout for the oldest job. found is false on timeout.
// A payload that does not decode has already left the queue; its error wraps
// ErrInvalidJob and job holds the recovered ID, if any.
func (c *Client) PopJob(ctx context.Context, timeout time.Duration) (job *Job, found bool, err error) {
	res, err := c.rdb.BRPop(ctx, timeout, c.queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("brpop failed: %w", err)
	}
	// res is [key, value].
	if len(res) != 2 {
		return nil, false, fmt.Errorf("brpop returned %d elements", len(res))
	}
	job, err = DecodeJob([]byte(res[1]))
	if err != nil {
		return job, false, err
	}
	return job, true, nil
}

// StoreResult keeps the JSON result of a job for ttl.
func (c *Client) StoreResult(ctx context.Context, jobID string, result any, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := c.rdb.Set(ctx, resultKey(c.queue, jobID), data, ttl).Err(); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}

// GetResult returns a stored job result. found is false if it expired or never existed.
func (c *Client) GetResult(ctx context.Context, jobID string) (data []byte, found bool, err error) {
	data, err = c.rdb.Get(ctx, resultKey(c.queue, jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get failed: %w", err)
	}
	return data, true, nil
}
