package entities

import (
	"errors"
	"fmt"
	"net/url"
)

// Slide is one entry in a deck: a web page shown fullscreen on the stage.
type Slide struct {
	// URL is the page to display; must be absolute http(s)
	URL string `yaml:"url" json:"url"`

	// Title is an optional human-readable label, shown in stage overlays
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Validate ensures the slide points at a loadable web page
func (s *Slide) Validate() error {
	if s.URL == "" {
		return errors.New("slide URL is required")
	}

	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("invalid slide URL %q: %w", s.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("slide URL %q must use http or https", s.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("slide URL %q has no host", s.URL)
	}

	return nil
}

// Deck is an ordered list of slides presented in sequence.
// An empty deck is valid: the presenter may start before slides exist.
type Deck struct {
	// Title is the deck title
	Title string `yaml:"title" json:"title"`

	// Slides contains all slides in presentation order
	Slides []Slide `yaml:"slides" json:"slides"`
}

// Validate ensures every slide in the deck is valid
func (d *Deck) Validate() error {
	for i := range d.Slides {
		if err := d.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// SlideAt returns a slide by its index (0-based)
func (d *Deck) SlideAt(index int) (*Slide, error) {
	if index < 0 || index >= len(d.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(d.Slides)-1)
	}
	return &d.Slides[index], nil
}
