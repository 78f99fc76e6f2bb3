package events

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks connected back-office sessions and fans entity-change
// events out to them so open list views know to refetch after another
// session mutates data.
type Hub struct {
	// Registered clients (session ID -> Client)
	clients map[string]*Client

	// Outbound events to broadcast
	broadcast chan *EntityChanged

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex
}

// EntityChanged is the message pushed after any mutating operation
type EntityChanged struct {
	Type     string `json:"type"` // Always "entity_changed"
	Entity   string `json:"entity"`
	EntityID string `json:"entity_id,omitempty"`
	ActorID  string `json:"actor_id,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan *EntityChanged, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = client
			h.mu.Unlock()
			log.Printf("✅ [EVENTS] Session connected: user %s (%s), %d total", client.UserID, client.UserRole, h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.SessionID]; ok {
				delete(h.clients, client.SessionID)
				close(client.send)
				log.Printf("🔴 [EVENTS] Session disconnected: user %s, %d remaining", client.UserID, len(h.clients))
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("❌ Failed to marshal event: %v", err)
				continue
			}

			h.mu.Lock()
			for sessionID, client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full, disconnect
					close(client.send)
					delete(h.clients, sessionID)
					log.Printf("⚠️ Session buffer full, disconnecting: %s", sessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishEntityChanged queues an entity-changed event for every
// connected session. Safe to call from any handler goroutine.
func (h *Hub) PublishEntityChanged(entity, entityID, actorID string) {
	h.broadcast <- &EntityChanged{
		Type:     "entity_changed",
		Entity:   entity,
		EntityID: entityID,
		ActorID:  actorID,
	}
}

// ClientCount returns the number of connected sessions
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
