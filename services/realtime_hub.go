package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Broadcaster pushes events at connected UI clients. Implemented by
// RealtimeHub; services hold the interface so tests can record events.
type Broadcaster interface {
	Broadcast(payload any)
}

type WSClient struct {
	Conn *websocket.Conn
}

// RealtimeHub fans ledger and analysis lifecycle events out to every open
// websocket. Single user, so there is one flat client set.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) Broadcast(payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
