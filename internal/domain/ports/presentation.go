package ports

import (
	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

// PresentationController is the mutation and read surface of the presentation
// state. Every method must be invoked on the owning serial context (see
// Dispatcher); implementations take no locks.
type PresentationController interface {
	// GoToNext advances the slide index, wrapping to 0 past the end
	GoToNext()

	// GoToPrevious retreats the slide index, wrapping to the last slide
	GoToPrevious()

	// ZoomIn raises the zoom level by one step, clamped to the maximum
	ZoomIn()

	// ZoomOut lowers the zoom level by one step, clamped to the minimum
	ZoomOut()

	// ZoomReset restores the default zoom level
	ZoomReset()

	// SetPresenting records whether the stage is open
	SetPresenting(presenting bool)

	// CurrentIndex returns the 0-based slide index
	CurrentIndex() int

	// SlideCount returns the total number of slides
	SlideCount() int

	// CurrentURL returns the active slide URL, empty for an empty deck
	CurrentURL() string

	// CurrentTitle returns the active slide title, empty when absent
	CurrentTitle() string

	// IsPresenting reports whether the stage is currently open
	IsPresenting() bool

	// Zoom returns the current zoom level
	Zoom() float64

	// Snapshot builds a fresh immutable status view
	Snapshot() entities.StatusSnapshot

	// OnChange registers a callback invoked on the owning context after any
	// state change. Callbacks must not block.
	OnChange(fn func())
}
