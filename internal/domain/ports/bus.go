package ports

import (
	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

// Subscription is the disposal handle returned by NotificationBus.Subscribe.
// The holder owns it and cancels it exactly once at teardown; the bus never
// unsubscribes on its own.
type Subscription interface {
	// Cancel removes the subscription. Safe to call more than once.
	Cancel()
}

// NotificationBus decouples the remote router from the UI-owning components
// that react to its events. Delivery is synchronous on the publisher's
// execution context, so handlers must not block. Events published with no
// subscriber registered are dropped. Same-kind events preserve publish order;
// there is no ordering guarantee across kinds.
type NotificationBus interface {
	// Publish delivers the event to every subscriber of its kind
	Publish(event entities.RemoteEvent)

	// Subscribe registers a handler for one event kind
	Subscribe(kind entities.EventKind, handler func(entities.RemoteEvent)) Subscription
}
