package server

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// authFrameWait is how long a fresh connection has to identify itself.
const authFrameWait = 10 * time.Second

// authFrame is the first frame a client must send after connecting.
type authFrame struct {
	Type   string `json:"type"`
	UserID uint   `json:"userId"`
}

// WebSocketUpgrade rejects plain HTTP requests on the websocket route.
func (s *Server) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WebSocketHandler handles GET /ws. The connection is anonymous until the
// client sends its auth frame; only then does it join the hub and start
// receiving pushes. A connection that never authenticates is dropped.
func (s *Server) WebSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		_ = conn.SetReadDeadline(time.Now().Add(authFrameWait))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			return
		}

		var frame authFrame
		if err := json.Unmarshal(raw, &frame); err != nil || frame.Type != "auth" || frame.UserID == 0 {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"auth frame required"}`))
			_ = conn.Close()
			return
		}

		// The user must exist; an unknown ID never gets a binding.
		if _, err := s.userRepo.GetByID(context.Background(), frame.UserID); err != nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unknown user"}`))
			_ = conn.Close()
			return
		}

		log.Printf("WebSocket: user %d connected", frame.UserID)
		client := s.hub.Register(frame.UserID, conn)

		// Start write pump in a goroutine
		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()
	})
}
