package stage

// Message is one push to connected stage pages.
type Message struct {
	// Type is one of: state, show, close, scroll
	Type string `json:"type"`

	// state fields
	URL        string  `json:"url,omitempty"`
	Title      string  `json:"title,omitempty"`
	Slide      int     `json:"slide,omitempty"`
	Total      int     `json:"total,omitempty"`
	Zoom       float64 `json:"zoom,omitempty"`
	Presenting bool    `json:"presenting,omitempty"`

	// scroll field
	DeltaY float64 `json:"deltaY,omitempty"`
}

// Message types pushed to stage clients
const (
	MessageState  = "state"
	MessageShow   = "show"
	MessageClose  = "close"
	MessageScroll = "scroll"
)
