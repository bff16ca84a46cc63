// Package kafka publishes analysis alerts to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/infra/telemetry"
)

// DefaultTopic receives alerts when the config leaves the topic empty.
const DefaultTopic = "sniffer-alerts"

// Config holds producer settings. No brokers means Kafka is disabled.
type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool {
	return len(c.Brokers) > 0
}

// MessageWriter is the part of kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes one message per alert, keyed by the alert's address.
type Producer struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
}

// NewProducer creates a producer for cfg.
func NewProducer(cfg Config) (*Producer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("kafka brokers are required")
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 500 * time.Millisecond,
	}
	return NewProducerWithWriter(writer, cfg.Topic), nil
}

// NewProducerWithWriter wraps an existing writer.
func NewProducerWithWriter(w MessageWriter, topic string) *Producer {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return &Producer{writer: w, topic: topic, now: time.Now}
}

// Close flushes and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Emit publishes every alert of report.
func (p *Producer) Emit(ctx context.Context, report *domain.Report) error {
	msgs := domain.AlertMessages(report, p.now().UTC())
	if len(msgs) == 0 {
		return nil
	}

	tracer := otel.Tracer("sniffer/kafka")
	messages := make([]kafka.Message, 0, len(msgs))
	spans := make([]trace.Span, 0, len(msgs))
	for _, m := range msgs {
		spanCtx, span := tracer.Start(ctx, "alerts.publish", trace.WithSpanKind(trace.SpanKindProducer))
		span.SetAttributes(
			attribute.String("alert.id", m.Alert.ID),
			attribute.String("alert.type", string(m.Alert.Type)),
			attribute.String("alert.severity", string(m.Alert.Severity)),
			attribute.String("analysis.kind", m.Analysis),
		)

		payload, err := json.Marshal(m)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			for _, s := range spans {
				s.End()
			}
			return err
		}
		headers := make([]kafka.Header, 0, 2)
		telemetry.InjectKafkaHeaders(spanCtx, &headers)
		messages = append(messages, kafka.Message{
			Topic:   p.topic,
			Key:     []byte(messageKey(m.Alert)),
			Value:   payload,
			Headers: headers,
		})
		spans = append(spans, span)
	}

	err := p.writer.WriteMessages(ctx, messages...)
	for _, span := range spans {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
	return err
}

// messageKey keeps alerts about one address on one partition.
func messageKey(a domain.Alert) string {
	if a.Address != nil {
		return *a.Address
	}
	return string(a.Type)
}
