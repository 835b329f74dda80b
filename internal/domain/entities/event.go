package entities

// EventKind classifies remote-control events carried by the notification bus.
type EventKind int

const (
	EventPlay     EventKind = iota // open the stage and start presenting
	EventStop                      // close the stage
	EventScrollBy                  // scroll the active slide vertically
)

// String returns a printable name for logging
func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventStop:
		return "stop"
	case EventScrollBy:
		return "scrollBy"
	default:
		return "unknown"
	}
}

// RemoteEvent is the tagged variant published from the remote router to
// UI-owning subscribers. Events are ephemeral: with no subscriber registered
// at publish time they are dropped, never queued or replayed.
type RemoteEvent struct {
	Kind EventKind

	// DeltaY is meaningful only for EventScrollBy
	DeltaY float64
}

// PlayEvent builds a Play event
func PlayEvent() RemoteEvent {
	return RemoteEvent{Kind: EventPlay}
}

// StopEvent builds a Stop event
func StopEvent() RemoteEvent {
	return RemoteEvent{Kind: EventStop}
}

// ScrollByEvent builds a ScrollBy event carrying a vertical delta
func ScrollByEvent(deltaY float64) RemoteEvent {
	return RemoteEvent{Kind: EventScrollBy, DeltaY: deltaY}
}
