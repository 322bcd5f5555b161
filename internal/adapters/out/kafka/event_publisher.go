// Package kafka publishes committed domain events to a Kafka topic.
//
// Every event becomes one message keyed by its aggregate, so all events of one
// order land on the same partition in the order they were raised. The value is
// a JSON envelope:
//
//	{"id": "...", "name": "order.status_changed", "occurred_at": "...", "key": "<order id>", "payload": {...}}
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/pkg/ddd"

	kafkago "github.com/segmentio/kafka-go"
)

const eventNameHeader = "event-name"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type envelope struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
}

// EventPublisher writes domain events synchronously: Publish returns once the
// brokers acknowledged every message or the write failed.
type EventPublisher struct {
	writer messageWriter
}

func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return newEventPublisher(&kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func newEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

func (p *EventPublisher) Publish(ctx context.Context, events ...ddd.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafkago.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(event)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("publish %d events: %w", len(messages), err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(event ddd.DomainEvent) (kafkago.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encode %s payload: %w", event.EventName(), err)
	}

	value, err := json.Marshal(envelope{
		ID:         event.EventID().String(),
		Name:       event.EventName(),
		OccurredAt: event.OccurredAt(),
		Key:        event.AggregateKey(),
		Payload:    payload,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encode %s envelope: %w", event.EventName(), err)
	}

	return kafkago.Message{
		Key:   []byte(event.AggregateKey()),
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafkago.Header{
			{Key: eventNameHeader, Value: []byte(event.EventName())},
		},
	}, nil
}

// NopPublisher drops every event. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...ddd.DomainEvent) error { return nil }
