package services

import (
	"sync"

	"github.com/fredcamaral/webdeck/internal/domain/ports"
)

// SerialDispatcher is the single execution context that owns the presentation
// state. One goroutine consumes a FIFO of scheduled functions; every remote
// request cycle, bus delivery, and deck reload runs through it, so the state
// they touch never needs locks. Remote requests are serialized behind any
// other work already scheduled here, which is acceptable at human-interactive
// request rates.
type SerialDispatcher struct {
	tasks  chan func()
	done   chan struct{} // closed by Stop
	exited chan struct{} // closed when the run loop returns
	stop   sync.Once
}

// NewSerialDispatcher creates the dispatcher and starts its run loop
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{
		tasks:  make(chan func(), 64),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	go d.run()

	return d
}

// run executes scheduled functions in arrival order until Stop
func (d *SerialDispatcher) run() {
	defer close(d.exited)

	for {
		select {
		case fn := <-d.tasks:
			fn()
		case <-d.done:
			// Drain work accepted before Stop.
			for {
				select {
				case fn := <-d.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Post schedules fn on the owning context without waiting. After Stop, fn is
// dropped.
func (d *SerialDispatcher) Post(fn func()) {
	select {
	case <-d.exited:
	case d.tasks <- fn:
	}
}

// Do runs fn on the owning context and waits for it to finish. Returns
// without running fn when the dispatcher has already stopped. Must not be
// called from the owning context: that would deadlock.
func (d *SerialDispatcher) Do(fn func()) {
	ran := make(chan struct{})

	select {
	case <-d.exited:
		return
	case d.tasks <- func() {
		fn()
		close(ran)
	}:
	}

	select {
	case <-ran:
	case <-d.exited:
	}
}

// Stop shuts the run loop down after draining accepted work. Idempotent;
// blocks until the loop has exited.
func (d *SerialDispatcher) Stop() {
	d.stop.Do(func() {
		close(d.done)
	})
	<-d.exited
}

var _ ports.Dispatcher = (*SerialDispatcher)(nil)
