package stage

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; the stage never sends anything
	// meaningful upstream
	maxMessageSize = 512
)

// client is one websocket-connected stage page
type client struct {
	id      string
	conn    *websocket.Conn
	send    chan Message
	manager *ConnectionManager
}

// createUpgrader builds a websocket upgrader validating origins
func (s *Server) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.isValidOrigin(r)
		},
	}
}

// handleWebSocket upgrades a stage page connection and registers it
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan Message, 64),
		manager: s.connMgr,
	}

	if !s.connMgr.Register(&Connection{ID: c.id, Send: c.send}) {
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()

	s.logger.Debug("stage client %s connected", c.id)

	// Let the newcomer render immediately instead of waiting for the next
	// state change.
	if s.onConnect != nil {
		s.onConnect()
	}
}

// readPump discards inbound messages and watches for disconnect. The stage is
// a pure display surface; all commands arrive through the remote port.
func (c *client) readPump() {
	defer func() {
		c.manager.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump pushes queued messages and keepalive pings to the page
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// isValidOrigin accepts same-origin requests plus local and private-LAN
// origins. The stage, like the remote, assumes a trusted LAN; configured CORS
// origins extend the list for unusual setups.
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.logger.Warn("websocket rejected: unparseable origin %q", origin)
		return false
	}

	if isPrivateHost(originURL.Hostname()) {
		return true
	}

	for _, allowed := range s.config.CORSOrigins {
		if originURL.String() == allowed {
			return true
		}
	}

	s.logger.Warn("websocket rejected: origin %q not allowed", origin)
	return false
}

// isPrivateHost reports whether hostname is loopback or on a private network
func isPrivateHost(hostname string) bool {
	switch hostname {
	case "localhost", "127.0.0.1", "0.0.0.0", "::1":
		return true
	}

	if strings.HasPrefix(hostname, "192.168.") || strings.HasPrefix(hostname, "10.") {
		return true
	}

	// 172.16.0.0 through 172.31.255.255
	if strings.HasPrefix(hostname, "172.") {
		parts := strings.Split(hostname, ".")
		if len(parts) == 4 {
			switch parts[1] {
			case "16", "17", "18", "19", "20", "21", "22", "23",
				"24", "25", "26", "27", "28", "29", "30", "31":
				return true
			}
		}
	}

	return false
}
