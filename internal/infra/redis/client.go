// Package redis carries the Redis side of the service: the analysis job
// queue, stored results and the alert pub/sub channel.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Defaults applied when the config leaves a name empty.
const (
	DefaultChannel = "sniffer:alerts"
	DefaultQueue   = "sniffer:jobs"
)

// Client wraps Redis operations for job intake and alert fan-out.
type Client struct {
	rdb     redis.Cmdable
	close   func() error
	channel string
	queue   string
}

// Config holds Redis connection configuration. An empty URL disables Redis.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Channel  string `yaml:"channel"`
	Queue    string `yaml:"queue"`
}

// Enabled reports whether a URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// NewClient creates a new Redis client and checks the connection.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := NewClientWith(rdb, cfg)
	c.close = rdb.Close
	return c, nil
}

// NewClientWith wraps an existing connection.
func NewClientWith(rdb redis.Cmdable, cfg Config) *Client {
	c := &Client{
		rdb:     rdb,
		close:   func() error { return nil },
		channel: cfg.Channel,
		queue:   cfg.Queue,
	}
	if c.channel == "" {
		c.channel = DefaultChannel
	}
	if c.queue == "" {
		c.queue = DefaultQueue
	}
	return c
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.close()
}

// Channel returns the alert pub/sub channel.
func (c *Client) Channel() string {
	return c.channel
}

// Queue returns the job list key.
func (c *Client) Queue() string {
	return c.queue
}

func resultKey(queue, jobID string) string {
	return fmt.Sprintf("%s:result:%s", queue, jobID)
}
