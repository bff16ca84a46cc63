package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/sniffer/internal/core/domain"
)

// Publisher fans alerts out on the configured pub/sub channel.
type Publisher struct {
	client *Client
	now    func() time.Time
}

// NewPublisher creates a publisher on c's channel.
func NewPublisher(c *Client) *Publisher {
	return &Publisher{client: c, now: time.Now}
}

// Emit publishes every alert of report in one pipeline.
func (p *Publisher) Emit(ctx context.Context, report *domain.Report) error {
	msgs := domain.AlertMessages(report, p.now().UTC())
	if len(msgs) == 0 {
		return nil
	}
	payloads := make([][]byte, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal alert %s: %w", m.Alert.ID, err)
		}
		payloads = append(payloads, data)
	}

	_, err := p.client.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, data := range payloads {
			pipe.Publish(ctx, p.client.channel, data)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
