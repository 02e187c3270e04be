// Package notifications provides real-time notification delivery over
// websockets. The registry is process-local: one bound connection per user.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"cityshare/internal/middleware"
	"cityshare/internal/observability"

	"github.com/gofiber/websocket/v2"
)

// Hub maps userID -> the single bound Client for that user.
type Hub struct {
	mu    sync.RWMutex
	conns map[uint]*Client
}

// NewHub creates a new Hub instance for managing notification connections.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[uint]*Client),
	}
}

// Register binds a connection to a userID. A second connection for the same
// user replaces the first; the displaced connection is closed.
func (h *Hub) Register(userID uint, conn *websocket.Conn) *Client {
	client := NewClient(h, conn, userID)

	h.mu.Lock()
	old := h.conns[userID]
	h.conns[userID] = client
	h.mu.Unlock()

	if old != nil {
		old.Close()
		middleware.ActiveWebSockets.Dec()
	}

	middleware.ActiveWebSockets.Inc()
	return client
}

// UnregisterClient removes the client's binding. A client displaced by a
// newer connection for the same user leaves the newer binding alone.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	removed := false
	if current, ok := h.conns[client.UserID]; ok && current == client {
		delete(h.conns, client.UserID)
		removed = true
	}
	h.mu.Unlock()

	if removed {
		middleware.ActiveWebSockets.Dec()
	}
}

// Push marshals payload and hands it to the user's connection, if any.
// Returns whether a connection accepted the frame; failure is not an error
// from the caller's point of view.
func (h *Hub) Push(userID uint, payload interface{}) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notifications: marshal push for user %d: %v", userID, err)
		return false
	}

	h.mu.RLock()
	client, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok {
		observability.PushDeliveries.WithLabelValues("offline").Inc()
		return false
	}
	if client.TrySend(data) {
		observability.PushDeliveries.WithLabelValues("delivered").Inc()
		return true
	}
	observability.PushDeliveries.WithLabelValues("dropped").Inc()
	return false
}

// IsOnline reports whether a user currently has a bound connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Shutdown gracefully closes all websocket connections. Each close frame is
// written by the client's own write pump; the hub never writes to a
// connection directly.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[uint]*Client)
	h.mu.Unlock()

	for _, client := range conns {
		client.Close()
		middleware.ActiveWebSockets.Dec()
	}
	return nil
}
