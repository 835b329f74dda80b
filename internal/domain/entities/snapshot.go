package entities

import (
	"fmt"
	"strings"
)

// StatusSnapshot is an immutable view of presentation state taken for one
// status poll. It is rebuilt fresh per request and never cached.
type StatusSnapshot struct {
	// SlideIndex is the 0-based current slide; the wire format is 1-based
	SlideIndex int

	// TotalSlides is the deck size; 0 means no deck is loaded
	TotalSlides int

	// Presenting reports whether the stage is currently open
	Presenting bool

	// CurrentURL is the active slide URL, empty for an empty deck
	CurrentURL string
}

// statusEscaper covers the only characters that can break the fixed status
// schema: the URL is its single free-form field.
var statusEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// EncodeJSON renders the status body. The schema is four fixed fields, so it
// is composed by hand instead of going through encoding/json; the slide
// number is 1-based on the wire.
func (s StatusSnapshot) EncodeJSON() []byte {
	return []byte(fmt.Sprintf(`{"slide":%d,"total":%d,"presenting":%t,"url":"%s"}`,
		s.SlideIndex+1, s.TotalSlides, s.Presenting, statusEscaper.Replace(s.CurrentURL)))
}
