package stage

import (
	_ "embed"
	"io"
	"net/http"
)

// stageHTML renders the current slide in an iframe and applies pushes
// received over the websocket.
//
//go:embed assets/stage.html
var stageHTML []byte

// handleStage serves the stage page
func (s *Server) handleStage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(stageHTML); err != nil {
		s.logger.Error("failed to write stage page: %v", err)
	}
}

// handleHealth answers liveness probes
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, `{"status":"ok"}`)
}
