package ports

import (
	"context"
	"time"
)

// FileChangeEvent reports a modification of a watched file
type FileChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// DeckWatcher watches a deck file for edits so the running presentation can
// pick them up without a restart
type DeckWatcher interface {
	// Watch starts watching path; events arrive on the returned channel until
	// the context is canceled or Stop is called
	Watch(ctx context.Context, path string) (<-chan FileChangeEvent, error)

	// Stop halts watching and closes the event channel
	Stop() error
}
