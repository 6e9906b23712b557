package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Hub fans shop-floor events out to every connected dashboard client.
// One connection per user; a reconnect replaces the previous socket.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[userID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

// Publish implements the EventPublisher interface used by the work
// order and inventory services.
func (h *Hub) Publish(eventType string, payload any) {
	event := Event{Type: eventType, Payload: payload, At: time.Now()}

	h.mutex.RLock()
	conns := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mutex.RUnlock()

	for userID, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(userID)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
