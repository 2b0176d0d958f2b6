package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ayusman/gesturetree/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SceneHandler broadcasts per-tick renderer commands to connected
// front-ends over WebSocket. The interaction loop pushes into it with
// Broadcast; the handler never reads the camera itself.
type SceneHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex

	// last holds the most recent payload, replayed to new clients so
	// they draw the scene immediately instead of waiting a tick.
	last []byte
}

// NewSceneHandler creates a SceneHandler with no connected clients.
func NewSceneHandler() *SceneHandler {
	return &SceneHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SceneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	if h.last != nil {
		conn.WriteMessage(websocket.TextMessage, h.last)
	}
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

// Broadcast marshals the payload and sends it to every connected
// client. Slow or dead clients get skipped on write error and cleaned
// up by their read loop.
func (h *SceneHandler) Broadcast(payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("scene payload marshal failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.last = msg
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected front-ends.
func (h *SceneHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
