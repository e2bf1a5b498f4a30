package telemetry

import (
	"sync"

	"github.com/mbrobotics/go-rover/internal/log"
)

// Hub fans telemetry frames out to every connected dashboard client
// using the channel-based fan-out pattern. All client bookkeeping
// happens on the Run goroutine.
type Hub struct {
	clients map[string]*Client

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}

	// mu guards clients for the read-only count exposed to handlers.
	mu sync.RWMutex
}

// NewHub creates a hub. Call Run on its own goroutine before use.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("dashboard client connected", "id", client.id, "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("dashboard client disconnected", "id", client.id, "remaining", count)

		case frame := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// Client buffer full, drop the slow reader.
					close(client.send)
					delete(h.clients, id)
					log.Warn("dropped slow dashboard client", "id", id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
}

// Broadcast queues a message for every connected client. Frames are
// dropped rather than blocking the motion loop that produced them.
func (h *Hub) Broadcast(msg *Message) error {
	frame, err := msg.Encode()
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- frame:
	default:
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
