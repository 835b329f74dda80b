package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/ports"
)

// Bus is the in-process notification channel between the remote router and
// the UI-owning collaborators. Publish delivers synchronously on the caller's
// execution context in subscription order; handlers must not block. An event
// with no subscriber for its kind is dropped.
type Bus struct {
	mu       sync.RWMutex
	handlers map[entities.EventKind][]*busSubscription
}

// busSubscription is the disposal handle handed to subscribers. The bus holds
// only the callback it was given; the subscriber owns the handle and cancels
// it at teardown.
type busSubscription struct {
	bus     *Bus
	kind    entities.EventKind
	id      string
	handler func(entities.RemoteEvent)
	cancel  sync.Once
}

// Cancel removes the subscription from the bus. Safe to call more than once.
func (s *busSubscription) Cancel() {
	s.cancel.Do(func() {
		s.bus.remove(s.kind, s.id)
	})
}

// NewBus creates an empty notification bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[entities.EventKind][]*busSubscription),
	}
}

// Subscribe registers a handler for one event kind and returns its disposal
// handle
func (b *Bus) Subscribe(kind entities.EventKind, handler func(entities.RemoteEvent)) ports.Subscription {
	sub := &busSubscription{
		bus:     b,
		kind:    kind,
		id:      uuid.New().String(),
		handler: handler,
	}

	b.mu.Lock()
	b.handlers[kind] = append(b.handlers[kind], sub)
	b.mu.Unlock()

	return sub
}

// Publish delivers the event to every subscriber currently registered for its
// kind, on the caller's execution context, in subscription order
func (b *Bus) Publish(event entities.RemoteEvent) {
	b.mu.RLock()
	subs := make([]*busSubscription, len(b.handlers[event.Kind]))
	copy(subs, b.handlers[event.Kind])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(event)
	}
}

// remove drops one subscription by id
func (b *Bus) remove(kind entities.EventKind, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[kind]
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

var _ ports.NotificationBus = (*Bus)(nil)
