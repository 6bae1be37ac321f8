// internal/events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/oceanbridge/importflow/internal/domain"
)

// StatusChanged is emitted once per applied shipment-detail update.
type StatusChanged struct {
	OrderID        string                `json:"order_id"`
	OrderReference string                `json:"order_reference"`
	PreviousStatus domain.ShipmentStatus `json:"previous_status"`
	NewStatus      domain.ShipmentStatus `json:"new_status"`
	OccurredAt     time.Time             `json:"occurred_at"`
}

// Publisher delivers shipment lifecycle events to downstream consumers.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, ev StatusChanged) error
	Close() error
}

// KafkaPublisher writes status events to a Kafka topic, keyed by order
// id so updates for one order stay on one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher against the given broker and topic.
func NewKafkaPublisher(brokerAddr, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerAddr),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, ev StatusChanged) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Error().Err(err).Str("order_id", ev.OrderID).Msg("kafka write failed")
		return err
	}

	log.Debug().
		Str("order_id", ev.OrderID).
		Str("status", ev.NewStatus.String()).
		Msg("status event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher satisfies Publisher when eventing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(ctx context.Context, ev StatusChanged) error { return nil }
func (NoopPublisher) Close() error                                                     { return nil }
