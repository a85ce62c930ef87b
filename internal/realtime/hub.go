// Package realtime pushes dashboard events to connected admin sessions.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Client is one live dashboard session. The websocket handler owns the
// underlying connection.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event is the envelope pushed to live dashboard clients.
type Event struct {
	Type    string    `json:"type"`
	Data    any       `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
	Version int       `json:"version"`
}

// Hub tracks live sessions per admin account.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[Client]struct{})}
}

// Register adds a session for adminID.
func (h *Hub) Register(adminID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.sessions[adminID]
	if !ok {
		clients = make(map[Client]struct{})
		h.sessions[adminID] = clients
	}
	clients[client] = struct{}{}
}

// Unregister removes a session. Unknown sessions are ignored.
func (h *Hub) Unregister(adminID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.sessions[adminID]
	if !ok {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.sessions, adminID)
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.sessions {
		n += len(clients)
	}
	return n
}

// Broadcast sends message to every session of one admin.
// A failed write is left to the session's reader loop to clean up.
func (h *Hub) Broadcast(adminID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.sessions[adminID] {
		c.Send(message)
	}
}

// BroadcastAll sends message to every session.
func (h *Hub) BroadcastAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.sessions {
		for c := range clients {
			c.Send(message)
		}
	}
}

// Publish stamps evt, encodes it and sends it to every session.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	if evt.Version == 0 {
		evt.Version = 1
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("realtime: encode %s event: %v", evt.Type, err)
		return
	}
	h.BroadcastAll(payload)
}
