package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rishii-05/stroke-prediction-project/pkg/events"
	pkgkafka "github.com/rishii-05/stroke-prediction-project/pkg/kafka"
)

// Publisher implements port.EventPublisher using Kafka. All assessment
// events go to one topic, keyed by aggregate ID so events for the same
// assessment stay ordered.
type Publisher struct {
	producer *pkgkafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewPublisher creates a new Kafka-based event publisher.
func NewPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to the assessment topic. Either every event
// in the batch is handed to the producer or none is.
func (p *Publisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		msg, err := p.toMessage(evt)
		if err != nil {
			return err
		}
		p.logger.DebugContext(ctx, "publishing event",
			"topic", p.topic,
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
		)
		messages = append(messages, msg)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}

// toMessage serializes the event body as JSON and lifts the envelope fields
// into headers so consumers can route without decoding payloads.
func (p *Publisher) toMessage(evt events.DomainEvent) (pkgkafka.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return pkgkafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
	}

	return pkgkafka.Message{
		Key:   []byte(evt.AggregateID().String()),
		Value: payload,
		Headers: map[string]string{
			"event_type":     evt.EventType(),
			"aggregate_type": evt.AggregateType(),
			"event_id":       evt.EventID().String(),
		},
	}, nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
