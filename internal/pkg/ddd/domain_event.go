// Package ddd holds the minimal building blocks shared by aggregates that emit
// domain events.
package ddd

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate during a business operation.
// Events are collected on the aggregate and dispatched after the unit of work
// commits, so a subscriber never observes a change that was rolled back.
type DomainEvent interface {
	EventID() uuid.UUID
	EventName() string
	// AggregateKey partitions the event stream; all events of one order share it.
	AggregateKey() string
	OccurredAt() time.Time
}

// BaseEvent carries the identity and timestamp common to every event.
type BaseEvent struct {
	id         uuid.UUID
	name       string
	occurredAt time.Time
}

// NewBaseEvent stamps a new event with a random id and the current UTC time.
func NewBaseEvent(name string) BaseEvent {
	return BaseEvent{id: uuid.New(), name: name, occurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventID() uuid.UUID {
	return e.id
}

func (e BaseEvent) EventName() string {
	return e.name
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// EventRecorder accumulates events on an aggregate. Embed it by value.
type EventRecorder struct {
	events []DomainEvent
}

// RaiseEvent appends an event to the pending list.
func (r *EventRecorder) RaiseEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns a copy of the pending events.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops pending events once they have been dispatched.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
