package stage

import (
	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/ports"
	"github.com/fredcamaral/webdeck/internal/logging"
)

// Broadcaster is the slice of the stage server the bridge pushes through
type Broadcaster interface {
	Broadcast(msg Message)
	URL() string
}

// Bridge connects the notification bus and the presentation controller to the
// stage. It is the subscriber behind the Play, Stop, and ScrollBy sinks, so
// the remote router never holds a reference to anything UI-owned. Handlers
// run synchronously on the owning serial context and only do channel sends
// and a fire-and-forget process spawn.
type Bridge struct {
	stage      Broadcaster
	controller ports.PresentationController
	launcher   ports.BrowserLauncher
	autoOpen   bool
	logger     *logging.Logger
	subs       []ports.Subscription
}

// NewBridge creates a bridge; launcher may be nil when auto-open is disabled
func NewBridge(stage Broadcaster, controller ports.PresentationController, launcher ports.BrowserLauncher, autoOpen bool, logger *logging.Logger) *Bridge {
	return &Bridge{
		stage:      stage,
		controller: controller,
		launcher:   launcher,
		autoOpen:   autoOpen,
		logger:     logger,
	}
}

// Attach subscribes to the bus and to controller change notifications. Call
// once during startup, before any traffic.
func (b *Bridge) Attach(bus ports.NotificationBus) {
	b.subs = []ports.Subscription{
		bus.Subscribe(entities.EventPlay, b.onPlay),
		bus.Subscribe(entities.EventStop, b.onStop),
		bus.Subscribe(entities.EventScrollBy, b.onScroll),
	}
	b.controller.OnChange(b.pushState)
}

// Detach cancels the bus subscriptions. The bridge owns its handles and
// disposes them exactly once at teardown.
func (b *Bridge) Detach() {
	for _, sub := range b.subs {
		sub.Cancel()
	}
	b.subs = nil
}

// PushState broadcasts the current presentation state to stage pages; also
// used as the on-connect push for new clients
func (b *Bridge) PushState() {
	b.pushState()
}

// onPlay opens the stage surface
func (b *Bridge) onPlay(entities.RemoteEvent) {
	b.stage.Broadcast(Message{Type: MessageShow})
	b.controller.SetPresenting(true)

	if b.autoOpen && b.launcher != nil {
		if err := b.launcher.Launch(b.stage.URL()); err != nil {
			b.logger.Warn("could not open browser: %v", err)
		}
	}
}

// onStop closes the stage surface
func (b *Bridge) onStop(entities.RemoteEvent) {
	b.stage.Broadcast(Message{Type: MessageClose})
	b.controller.SetPresenting(false)
}

// onScroll forwards a scroll delta to the active render surface
func (b *Bridge) onScroll(event entities.RemoteEvent) {
	b.stage.Broadcast(Message{Type: MessageScroll, DeltaY: event.DeltaY})
}

// pushState broadcasts a full state message
func (b *Bridge) pushState() {
	b.stage.Broadcast(Message{
		Type:       MessageState,
		URL:        b.controller.CurrentURL(),
		Title:      b.controller.CurrentTitle(),
		Slide:      b.controller.CurrentIndex() + 1,
		Total:      b.controller.SlideCount(),
		Zoom:       b.controller.Zoom(),
		Presenting: b.controller.IsPresenting(),
	})
}
