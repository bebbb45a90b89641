package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"roomly/internal/domain/room"
)

type Producer struct {
	sync sarama.SyncProducer
}

func NewProducer(brokers []string, cfg *sarama.Config) (*Producer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	sync, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{sync: sync}, nil
}

func (p *Producer) Send(ctx context.Context, topic, key string, payload []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}
	_, _, err := p.sync.SendMessage(msg)
	return err
}

func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

// EventPublisher adapts the producer to the booking service's Publisher
// interface: calendar domain events go out JSON-encoded, keyed by room id so
// per-room ordering is preserved.
type EventPublisher struct {
	Producer *Producer
	Topic    string
}

type eventEnvelope struct {
	Name       string    `json:"name"`
	RoomID     string    `json:"roomId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (p EventPublisher) Publish(ctx context.Context, ev room.DomainEvent) error {
	payload, err := json.Marshal(eventEnvelope{
		Name:       ev.EventName(),
		RoomID:     ev.AggregateID(),
		OccurredAt: ev.OccurredAt(),
	})
	if err != nil {
		return err
	}
	return p.Producer.Send(ctx, p.Topic, ev.AggregateID(), payload)
}
