// Package kafka wraps segmentio/kafka-go with the producer and consumer
// shapes the stroke services share: lazy per-topic writers, at-least-once
// group readers, and one security config for both directions.
package kafka

import (
	"fmt"

	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// SASL carries credentials for brokers that require authentication.
type SASL struct {
	// Mechanism is "PLAIN", "SCRAM-SHA-256", or "SCRAM-SHA-512".
	// Empty selects PLAIN.
	Mechanism string
	Username  string
	Password  string
}

// Config holds broker addresses and the security settings shared by
// producers and consumers.
type Config struct {
	Brokers       []string
	ConsumerGroup string

	// TLS switches broker connections to TLS 1.2 or newer.
	TLS bool

	// SASL, when non-nil, authenticates every broker connection.
	SASL *SASL
}

// saslMechanism resolves the configured mechanism. Unknown mechanism names
// are an error rather than a silent fallback to unauthenticated connections.
func (c Config) saslMechanism() (sasl.Mechanism, error) {
	switch c.SASL.Mechanism {
	case "PLAIN", "":
		return plain.Mechanism{
			Username: c.SASL.Username,
			Password: c.SASL.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, c.SASL.Username, c.SASL.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, c.SASL.Username, c.SASL.Password)
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", c.SASL.Mechanism)
	}
}
