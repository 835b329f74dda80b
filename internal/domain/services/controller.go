package services

import (
	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/ports"
)

// defaultZoom is the level a freshly loaded deck starts at
const defaultZoom = 1.0

// Controller implements the presentation-state facade over a deck. It has no
// locking on purpose: every method runs on the owning serial context, which
// already guarantees sequential access.
type Controller struct {
	deck       *entities.Deck
	index      int
	zoomLevel  float64
	bounds     entities.ZoomConfig
	presenting bool
	onChange   []func()
}

// NewController creates a controller positioned at the first slide
func NewController(deck *entities.Deck, bounds entities.ZoomConfig) *Controller {
	return &Controller{
		deck:      deck,
		zoomLevel: bounds.Clamp(defaultZoom),
		bounds:    bounds,
	}
}

// GoToNext advances the slide index, wrapping to 0 past the end. No-op on an
// empty deck.
func (c *Controller) GoToNext() {
	n := c.deck.SlideCount()
	if n == 0 {
		return
	}
	c.index = (c.index + 1) % n
	c.notify()
}

// GoToPrevious retreats the slide index, wrapping to the last slide. No-op on
// an empty deck.
func (c *Controller) GoToPrevious() {
	n := c.deck.SlideCount()
	if n == 0 {
		return
	}
	c.index = (c.index - 1 + n) % n
	c.notify()
}

// ZoomIn raises the zoom level by one step, clamped to the maximum
func (c *Controller) ZoomIn() {
	c.zoomLevel = c.bounds.Clamp(c.zoomLevel + c.bounds.Step)
	c.notify()
}

// ZoomOut lowers the zoom level by one step, clamped to the minimum
func (c *Controller) ZoomOut() {
	c.zoomLevel = c.bounds.Clamp(c.zoomLevel - c.bounds.Step)
	c.notify()
}

// ZoomReset restores the default zoom level
func (c *Controller) ZoomReset() {
	c.zoomLevel = c.bounds.Clamp(defaultZoom)
	c.notify()
}

// SetPresenting records whether the stage is open
func (c *Controller) SetPresenting(presenting bool) {
	if c.presenting == presenting {
		return
	}
	c.presenting = presenting
	c.notify()
}

// SetDeck swaps in a reloaded deck, keeping the current position when it
// still exists. A reloaded deck starts from the default zoom, like a fresh
// one; ZoomReset also carries the single change notification.
func (c *Controller) SetDeck(deck *entities.Deck) {
	c.deck = deck
	if n := deck.SlideCount(); n == 0 {
		c.index = 0
	} else if c.index >= n {
		c.index = n - 1
	}
	c.ZoomReset()
}

// CurrentIndex returns the 0-based slide index
func (c *Controller) CurrentIndex() int {
	return c.index
}

// SlideCount returns the total number of slides
func (c *Controller) SlideCount() int {
	return c.deck.SlideCount()
}

// CurrentURL returns the active slide URL, empty for an empty deck
func (c *Controller) CurrentURL() string {
	if slide := c.currentSlide(); slide != nil {
		return slide.URL
	}
	return ""
}

// CurrentTitle returns the active slide title, empty for an empty deck
func (c *Controller) CurrentTitle() string {
	if slide := c.currentSlide(); slide != nil {
		return slide.Title
	}
	return ""
}

// currentSlide resolves the active slide, nil for an empty deck
func (c *Controller) currentSlide() *entities.Slide {
	slide, err := c.deck.SlideAt(c.index)
	if err != nil {
		return nil
	}
	return slide
}

// IsPresenting reports whether the stage is currently open
func (c *Controller) IsPresenting() bool {
	return c.presenting
}

// Zoom returns the current zoom level
func (c *Controller) Zoom() float64 {
	return c.zoomLevel
}

// Snapshot builds a fresh immutable status view of the current state
func (c *Controller) Snapshot() entities.StatusSnapshot {
	return entities.StatusSnapshot{
		SlideIndex:  c.index,
		TotalSlides: c.deck.SlideCount(),
		Presenting:  c.presenting,
		CurrentURL:  c.CurrentURL(),
	}
}

// OnChange registers a callback invoked after any state change, on the owning
// context. Callbacks must not block.
func (c *Controller) OnChange(fn func()) {
	c.onChange = append(c.onChange, fn)
}

// notify tells registered observers the state changed
func (c *Controller) notify() {
	for _, fn := range c.onChange {
		fn()
	}
}

var _ ports.PresentationController = (*Controller)(nil)
