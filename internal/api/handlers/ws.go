package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ivalero/marketlens/internal/refresh"
	"github.com/ivalero/marketlens/pkg/logger"
)

// ProgressHub fans refresh progress out to websocket subscribers.
// Clients that fall behind are dropped rather than blocking a cycle.
type ProgressHub struct {
	logger   *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewProgressHub creates an empty hub.
func NewProgressHub(log *logger.Logger) *ProgressHub {
	return &ProgressHub{
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Single-user local tool; any origin may subscribe.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// progressEvent is the wire format of one hub message.
type progressEvent struct {
	Type     string            `json:"type"` // "progress" or "done"
	Progress *refresh.Progress `json:"progress,omitempty"`
	Summary  *refresh.Summary  `json:"summary,omitempty"`
}

// HandleWS upgrades the connection and subscribes it to progress
// events until the peer disconnects.
// GET /api/refresh/ws
func (h *ProgressHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Reader loop only detects disconnects; clients send nothing.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends one progress report to every subscriber.
func (h *ProgressHub) Broadcast(p refresh.Progress) {
	h.send(progressEvent{Type: "progress", Progress: &p})
}

// BroadcastDone announces a completed cycle.
func (h *ProgressHub) BroadcastDone(s refresh.Summary) {
	h.send(progressEvent{Type: "done", Summary: &s})
}

func (h *ProgressHub) send(event progressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *ProgressHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		conn.Close()
		delete(h.clients, conn)
	}
}
