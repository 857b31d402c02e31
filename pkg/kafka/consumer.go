package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes one consumed message. Returning an error logs and skips
// the message; it does not stop the consumer.
type Handler func(ctx context.Context, msg Message) error

// Consumer reads a topic within a consumer group and hands each message to
// a Handler. Offsets commit after the handler runs, so delivery is
// at-least-once.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  *slog.Logger
	topic   string
	group   string
}

// NewConsumer builds a group consumer for topic.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	readerCfg := kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10 << 20,
	}

	if cfg.TLS || cfg.SASL != nil {
		dialer := &kafkago.Dialer{}
		if cfg.TLS {
			dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		if cfg.SASL != nil {
			mechanism, err := cfg.saslMechanism()
			if err != nil {
				return nil, err
			}
			dialer.SASLMechanism = mechanism
		}
		readerCfg.Dialer = dialer
	}

	return &Consumer{
		reader:  kafkago.NewReader(readerCfg),
		handler: handler,
		logger:  logger,
		topic:   topic,
		group:   cfg.ConsumerGroup,
	}, nil
}

// Start consumes until ctx is canceled. A handler error does not block the
// partition: the failure is logged and the offset still commits.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("kafka consumer starting", "topic", c.topic, "group", c.group)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("kafka consumer stopped", "topic", c.topic)
				return nil
			}
			return fmt.Errorf("kafka: fetch message: %w", err)
		}
		c.consume(ctx, m)
	}
}

func (c *Consumer) consume(ctx context.Context, m kafkago.Message) {
	msg := Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}

	if err := c.handler(ctx, msg); err != nil {
		c.logger.Error("kafka handler failed",
			"topic", m.Topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"error", err,
		)
	}

	if err := c.reader.CommitMessages(ctx, m); err != nil {
		c.logger.Error("kafka commit failed",
			"topic", m.Topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"error", err,
		)
	}
}

// Close closes the underlying reader and leaves the group.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("kafka: close reader: %w", err)
	}
	return nil
}
