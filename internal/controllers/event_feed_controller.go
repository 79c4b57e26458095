package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// EventHub fans booking and driver events out to connected admin dashboards.
type EventHub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan map[string]interface{}
	mu        sync.Mutex
}

// Hub is the process-wide event hub; controllers publish into it.
var Hub = NewEventHub()

// NewEventHub creates a hub and starts its broadcast goroutine.
func NewEventHub() *EventHub {
	hub := &EventHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan map[string]interface{}, 100),
	}
	go hub.run()
	return hub
}

func (h *EventHub) run() {
	for msg := range h.broadcast {
		h.mu.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).Debug("event hub: dropping dead connection")
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.mu.Unlock()
	}
}

// Publish enqueues an event for broadcast. Drops the event when the buffer
// is full rather than blocking a request handler.
func (h *EventHub) Publish(event string, payload gin.H) {
	msg := map[string]interface{}{
		"event": event,
		"at":    time.Now().UTC(),
	}
	for k, v := range payload {
		msg[k] = v
	}
	select {
	case h.broadcast <- msg:
	default:
		logrus.Warn("event hub: broadcast buffer full, dropping event")
	}
}

func (h *EventHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *EventHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

// AdminEventsWS upgrades an admin dashboard connection and streams events
// until the client goes away.
func AdminEventsWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("AdminEventsWS: upgrade failed")
		return
	}
	Hub.add(conn)

	// Read loop exists only to notice the close frame.
	go func() {
		defer Hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
