// Package ws maintains the set of WebSocket subscribers to the live stats
// feed and fans broadcast messages out to them.
package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"shielded-stats-backend/internal/logger"
)

// Hub tracks connected clients.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logger.WithComponent("ws"),
	}
}

// HandleUpgrade upgrades an HTTP request to a WebSocket subscription.
func (h *Hub) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	client := newClient(conn)

	h.mu.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.log.WithField("clients", count).Debug("client connected")

	go client.writePump()
	go client.readPump(h.remove)
}

// Broadcast queues a message for every connected client. Clients whose
// queues are full are dropped so one slow reader cannot stall the feed.
func (h *Hub) Broadcast(msg []byte) {
	var slow []*Client
	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()
	for _, client := range slow {
		h.log.Debug("dropping slow client")
		h.remove(client)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown disconnects all clients.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()
	for _, client := range clients {
		client.close()
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	_, present := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if present {
		client.close()
	}
}
