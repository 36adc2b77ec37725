package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/sigil/internal/gesture"
)

// EventsHandler broadcasts every dispatched match to connected WebSocket clients.
type EventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewEventsHandler creates an EventsHandler with no clients.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients returns the number of connected clients.
func (h *EventsHandler) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish sends a match event to every client.
func (h *EventsHandler) Publish(m gesture.Match) {
	msg, err := json.Marshal(map[string]any{
		"type":      "match",
		"match":     newMatchMessage(m),
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("event write error: %v", err)
		}
	}
}
