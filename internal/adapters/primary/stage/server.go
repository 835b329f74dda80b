package stage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/logging"
)

// Server hosts the stage: the browser surface that renders the current slide
// and reacts to pushes from the notification bridge. Unlike the remote port
// this is a conventional HTTP server with keep-alive, timeouts, and CORS.
type Server struct {
	config  entities.StageConfig
	connMgr *ConnectionManager
	logger  *logging.Logger

	// onConnect is invoked after each websocket client registers so the
	// bridge can push initial state
	onConnect func()

	server  *http.Server
	running bool
}

// NewServer creates a stage server for the given config
func NewServer(config entities.StageConfig, logger *logging.Logger) *Server {
	return &Server{
		config:  config,
		connMgr: NewConnectionManager(),
		logger:  logger,
	}
}

// OnConnect registers the callback run after each client connects. Must be
// set before Start.
func (s *Server) OnConnect(fn func()) {
	s.onConnect = fn
}

// Handler builds the stage routes: the page itself, its websocket, and a
// health probe
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWebSocket)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleStage).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	})

	return c.Handler(r)
}

// Start begins serving in the background
func (s *Server) Start() error {
	if s.running {
		return errors.New("stage server already running")
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.running = true

	go func() {
		s.logger.Info("stage listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("stage server error: %v", err)
		}
	}()

	return nil
}

// Stop closes all websocket clients and shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if !s.running {
		return errors.New("stage server not running")
	}
	s.running = false

	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stage shutdown: %w", err)
	}
	return nil
}

// Broadcast pushes a message to every connected stage page
func (s *Server) Broadcast(msg Message) {
	s.connMgr.Broadcast(msg)
}

// URL returns the stage page address
func (s *Server) URL() string {
	return s.config.URL()
}
