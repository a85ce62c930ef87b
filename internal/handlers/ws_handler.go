package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"association-site-api/internal/middleware"
	"association-site-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsClient implements realtime.Client by wrapping a websocket connection.
// gorilla allows one concurrent writer, so Send is serialized.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

// liveMessage is sent by dashboard clients.
//
//	{"type":"visibility","visible":false}
//	{"type":"refresh"}
type liveMessage struct {
	Type    string `json:"type"`
	Visible *bool  `json:"visible"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// Live upgrades GET /api/admin/live to a websocket. Each connection is a
// dashboard viewer: it counts as visible until it reports otherwise, and it
// receives stats_updated events.
func (h *Handler) Live(c *gin.Context) {
	adminID := middleware.AdminID(c)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}

	client := &wsClient{conn: conn}
	viewerID := "viewer-" + uuid.NewString()
	h.Hub.Register(adminID, client)

	// current snapshot first, so the dashboard does not wait for the next poll
	if snapshot, err := json.Marshal(realtime.Event{
		Type:    "stats_snapshot",
		Data:    h.Sources.DashboardStats.View(),
		At:      h.Now(),
		Version: 1,
	}); err == nil {
		client.Send(snapshot)
	}
	h.Visibility.SetViewer(viewerID, true)

	// Heartbeat: send periodic pings; close on error
	pingTicker := time.NewTicker(30 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					// ping failed; reader loop will exit on next error
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		h.Visibility.RemoveViewer(viewerID)
		h.Hub.Unregister(adminID, client)
		client.Close()
	}()

	// Reader loop: apply client messages and keep connection alive via pong handler
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Normal close or error; exit loop
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg liveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "visibility":
			if msg.Visible != nil {
				h.Visibility.SetViewer(viewerID, *msg.Visible)
			}
		case "refresh":
			// the stats OnLoad hook publishes the result to every viewer
			h.Sources.DashboardStats.Refresh(context.WithoutCancel(c.Request.Context()))
		}
	}
}
