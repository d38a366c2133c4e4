package ws

import (
	"log/slog"
	"sync"

	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
)

// Hub fans marketplace refresh events out to connected websocket clients.
// Publish never blocks: a client whose send buffer is full misses the event,
// which is acceptable because clients re-query the API on receipt anyway.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan portssvc.Event
	done       chan struct{}
}

// NewHub creates a hub. Call Run in a goroutine before serving connections.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan portssvc.Event, 64),
		done:       make(chan struct{}),
	}
}

var _ portssvc.Notifier = (*Hub)(nil)

// Run processes register/unregister/broadcast events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("websocket client connected", "clients", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("websocket client disconnected", "clients", h.ClientCount())

		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					// Client is too slow; it will catch up on its next poll.
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	close(h.done)
}

// Publish implements services.Notifier. It never blocks the caller.
func (h *Hub) Publish(event portssvc.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("websocket broadcast buffer full, dropping event", "entity", event.Entity, "entityID", event.EntityID)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
