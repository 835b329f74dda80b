package stage

import (
	"sync"
)

// Connection represents one connected stage page
type Connection struct {
	ID   string
	Send chan Message
}

// ConnectionManager tracks stage websocket connections and fans pushes out to
// them. A client that cannot keep up with its send buffer is evicted rather
// than allowed to stall the broadcast path.
type ConnectionManager struct {
	mu          sync.Mutex
	connections map[string]*Connection
	closed      bool
}

// NewConnectionManager creates an empty connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*Connection),
	}
}

// Register adds a connection. Returns false once the manager has been closed.
func (cm *ConnectionManager) Register(conn *Connection) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.closed {
		return false
	}
	cm.connections[conn.ID] = conn
	return true
}

// Unregister removes a connection and closes its send channel
func (cm *ConnectionManager) Unregister(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, ok := cm.connections[id]; ok {
		delete(cm.connections, id)
		close(conn.Send)
	}
}

// Broadcast sends a message to every connection, evicting slow clients
func (cm *ConnectionManager) Broadcast(msg Message) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for id, conn := range cm.connections {
		select {
		case conn.Send <- msg:
		default:
			delete(cm.connections, id)
			close(conn.Send)
		}
	}
}

// Count returns the number of connected clients
func (cm *ConnectionManager) Count() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return len(cm.connections)
}

// CloseAll closes every connection and refuses further registrations
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.closed = true
	for id, conn := range cm.connections {
		delete(cm.connections, id)
		close(conn.Send)
	}
}
