package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventBus is the interface modules publish to and subscribe on.
type EventBus interface {
	// Publish delivers an event to all matching subscribers synchronously.
	Publish(event Event)

	// PublishAsync delivers an event without blocking the caller.
	PublishAsync(event Event)

	// Subscribe registers a handler for one event type. EventTypeAll
	// receives everything. The returned id can be passed to Unsubscribe.
	Subscribe(eventType EventType, handler EventHandler) string

	// Unsubscribe removes a subscription.
	Unsubscribe(subscriptionID string)
}

type subscription struct {
	id        string
	eventType EventType
	handler   EventHandler
}

// Bus is the in-process EventBus implementation.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]subscription
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]subscription)}
}

// Publish delivers the event to matching subscribers in the caller's
// goroutine.
func (b *Bus) Publish(event Event) {
	b.dispatch(b.fill(event))
}

// PublishAsync delivers the event from a fresh goroutine.
func (b *Bus) PublishAsync(event Event) {
	filled := b.fill(event)
	go b.dispatch(filled)
}

// Subscribe registers a handler for eventType.
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.subs[id] = subscription{id: id, eventType: eventType, handler: handler}
	return id
}

// Unsubscribe removes the subscription with the given id.
func (b *Bus) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, subscriptionID)
}

func (b *Bus) fill(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return event
}

func (b *Bus) dispatch(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.eventType == EventTypeAll || sub.eventType == event.Type {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
