// Package events publishes domain change notifications. Publishing is
// best effort: callers log failures and never fail a request over them.
package events

import (
	"context"
	"fmt"
	"time"
)

// Type names a change, formatted as "<entity>.<action>". It doubles as the
// AMQP routing key.
type Type string

// Actions applied to entities.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entities that emit events. Expense and income events use the transaction
// kind ("expense", "income") as the entity.
const (
	EntityCategory = "category"
	EntitySettings = "settings"
)

// TypeOf builds an event type from an entity and an action.
func TypeOf(entity, action string) Type {
	return Type(fmt.Sprintf("%s.%s", entity, action))
}

// Event is the message body sent for every change.
type Event struct {
	Type       Type      `json:"type"`
	ID         uint      `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New stamps an event with the current time.
func New(entity, action string, id uint) Event {
	return Event{
		Type:       TypeOf(entity, action),
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }
