package realtime

import (
	"sync"

	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/logger"
)

// Event is the JSON envelope for every message on the wire.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Hub is the presence registry: it maps user IDs to their live
// connection and routes best-effort events to them. The durable
// notification row is the system of record; anything dropped here is
// only a missed latency optimization.
//
// The map is the sole in-process mutable shared state of the service,
// so it stays behind this type and a mutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

var _ domain.Presence = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register binds a user to a connection. A single active connection per
// user: last registration wins, and the superseded connection is closed.
func (h *Hub) Register(userID string, c *Client) {
	h.mu.Lock()
	prev := h.clients[userID]
	h.clients[userID] = c
	c.userID = userID
	h.mu.Unlock()

	if prev != nil && prev != c {
		prev.close()
	}

	logger.Log.Info("User registered on realtime channel", "userId", userID)
}

// Unregister removes whatever entries point at this connection.
// Linear in the number of live connections, acceptable at this scale.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	for userID, client := range h.clients {
		if client == c {
			delete(h.clients, userID)
			logger.Log.Info("User disconnected from realtime channel", "userId", userID)
		}
	}
	h.mu.Unlock()
}

// Push delivers an event to the user's live connection. Returns false
// when the user is not connected or their send buffer is full; it never
// blocks and never panics.
func (h *Hub) Push(userID, event string, payload any) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case client.send <- Event{Event: event, Data: payload}:
		return true
	default:
		// Slow consumer; drop rather than stall the caller.
		return false
	}
}

// Broadcast sends an event to every live connection.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.send <- Event{Event: event, Data: payload}:
		default:
		}
	}
}

// Online reports whether a user currently holds a live connection.
func (h *Hub) Online(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
