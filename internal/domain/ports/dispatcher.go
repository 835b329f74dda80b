package ports

// Dispatcher is the serial execution context that owns the presentation
// state. All state mutation and notification delivery is funneled through it,
// which removes the need for locks around that state by construction.
type Dispatcher interface {
	// Do runs fn on the owning context and waits for it to finish. Must not
	// be called from the owning context itself.
	Do(fn func())

	// Post schedules fn on the owning context without waiting
	Post(fn func())
}
