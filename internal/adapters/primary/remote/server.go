package remote

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/fredcamaral/webdeck/internal/domain/ports"
	"github.com/fredcamaral/webdeck/internal/logging"
)

const (
	// Port is the fixed remote-control port. Phones pair by typing the
	// address, so it never moves across machines or releases and is not
	// configurable.
	Port = 9123

	// maxRequestBytes caps the single read performed per connection. A
	// request larger than this, or split across TCP segments, is not
	// reassembled: only short header-less GETs are expected from the
	// bundled client. This is a documented constraint of the protocol.
	maxRequestBytes = 8192
)

// BindError reports that the remote-control port could not be bound. The
// host application treats this as remote control being unavailable, not as
// a fatal error.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("remote control: binding %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Server accepts one-shot connections on the remote-control port. Each
// accepted connection is handed off without blocking further accepts; the
// routed request cycle itself runs on the owning serial context, so remote
// requests mutate presentation state strictly in arrival order.
type Server struct {
	addr       string
	router     *Router
	dispatcher ports.Dispatcher
	logger     *logging.Logger

	mu      sync.Mutex
	ln      net.Listener
	running bool
	wg      sync.WaitGroup
}

// NewServer creates a server bound to addr on Start. Production callers pass
// the fixed Port; tests may pass an ephemeral address.
func NewServer(addr string, router *Router, dispatcher ports.Dispatcher, logger *logging.Logger) *Server {
	return &Server{
		addr:       addr,
		router:     router,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start binds the port and begins accepting connections. A failure to bind
// returns a BindError and leaves the server stopped.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("remote server already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return &BindError{Addr: s.addr, Err: err}
	}

	s.ln = ln
	s.running = true

	s.wg.Add(1)
	go s.acceptLoop(ln)

	s.logger.Info("remote control listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, or nil before Start
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop cancels the accept loop. Idempotent. Connections already accepted are
// left to finish their single request/response cycle; they are not waited
// for, since a client that sent nothing holds its connection open
// indefinitely (a known, undefended limitation of the protocol).
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	ln := s.ln
	s.mu.Unlock()

	_ = ln.Close()
	s.wg.Wait()
	s.logger.Info("remote control stopped")
}

// acceptLoop accepts until the listener is closed
func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			// Accept fails permanently once the listener closes.
			return
		}
		go s.handleConn(conn)
	}
}

// handleConn services exactly one request: a single bounded read, request
// line parse, routed dispatch on the owning context, full write, close. On a
// read failure or empty payload the connection is dropped silently with no
// response. There is no keep-alive and no per-connection timeout beyond the
// one bounded read.
func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	buf := make([]byte, maxRequestBytes)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return
	}

	req, ok := parseRequest(buf[:n])
	if !ok {
		return
	}

	var resp Response
	s.dispatcher.Do(func() {
		resp = s.router.Dispatch(req)
	})
	if resp.ContentType == "" {
		// Dispatcher is shutting down and never ran the request.
		return
	}

	if err := resp.writeTo(conn); err != nil {
		s.logger.Debug("write to %s failed: %v", conn.RemoteAddr(), err)
	}
}
