package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/vntrieu/darts/internal/session"
)

// Hub keeps the connected scoreboards and input devices and fans match
// updates out to them. It implements session.Publisher and
// session.StatsRefresher.
type Hub struct {
	// Registered clients by role
	clients map[string]map[*Client]bool

	broadcast  chan *BroadcastMessage
	register   chan *Client
	unregister chan *Client
	// done is closed when Run returns.
	done chan struct{}

	handler *MessageHandler

	// overGameID is the last game announced as over.
	overGameID string

	mu sync.RWMutex
}

// BroadcastMessage is an envelope queued for delivery. With Target set only
// that client receives it; otherwise every client except ExcludeClient does.
type BroadcastMessage struct {
	Envelope      *ServerEnvelope
	Target        *Client
	ExcludeClient *Client
}

// NewHub creates a new Hub. handler may be nil for a broadcast-only hub.
func NewHub(handler *MessageHandler) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *BroadcastMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		handler:    handler,
	}
}

// SetMessageHandler sets the handler for client messages.
func (h *Hub) SetMessageHandler(handler *MessageHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handler = handler
}

func (h *Hub) messageHandler() *MessageHandler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.handler
}

// Run delivers messages until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for role, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, role)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Role] == nil {
				h.clients[client.Role] = make(map[*Client]bool)
			}
			h.clients[client.Role][client] = true
			total := len(h.clients[client.Role])
			h.mu.Unlock()
			log.Printf("ws client registered role=%s remote=%s total=%d", client.Role, client.RateLimitKey, total)

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()
			log.Printf("ws client unregistered role=%s remote=%s", client.Role, client.RateLimitKey)

		case message := <-h.broadcast:
			h.mu.Lock()
			if message.Target != nil {
				if h.clients[message.Target.Role][message.Target] {
					h.deliverLocked(message.Target, message.Envelope)
				}
			} else {
				for _, clients := range h.clients {
					for client := range clients {
						if client != message.ExcludeClient {
							h.deliverLocked(client, message.Envelope)
						}
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// registerClient hands c to Run. It reports false once the hub has stopped.
func (h *Hub) registerClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// unregisterClient hands c to Run; after the hub stopped it is a no-op.
func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// deliverLocked queues env on client, dropping the client if it cannot keep up.
func (h *Hub) deliverLocked(client *Client, env *ServerEnvelope) {
	select {
	case client.send <- env:
	default:
		log.Printf("ws client too slow, dropping role=%s remote=%s", client.Role, client.RateLimitKey)
		h.removeLocked(client)
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.Role]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.Role)
	}
}

func (h *Hub) enqueue(message *BroadcastMessage) {
	select {
	case h.broadcast <- message:
	default:
		log.Printf("ws broadcast queue full, dropping type=%s event=%s", message.Envelope.Type, message.Envelope.Event)
	}
}

// Broadcast sends env to every client.
func (h *Hub) Broadcast(env *ServerEnvelope) {
	h.enqueue(&BroadcastMessage{Envelope: env})
}

// SendTo sends env to client only, if it is still connected.
func (h *Hub) SendTo(client *Client, env *ServerEnvelope) {
	h.enqueue(&BroadcastMessage{Envelope: env, Target: client})
}

// PublishView broadcasts the match state, and the final standings the first
// time a match is seen over.
func (h *Hub) PublishView(view *session.View) {
	if view == nil {
		return
	}
	h.Broadcast(&ServerEnvelope{Type: ServerTypeState, Event: ServerEventState, Payload: view})

	if view.State == nil || !view.State.Over() {
		return
	}
	h.mu.Lock()
	announce := h.overGameID != view.Game.ID
	h.overGameID = view.Game.ID
	h.mu.Unlock()
	if announce {
		h.Broadcast(&ServerEnvelope{
			Type:    ServerTypeEvent,
			Event:   ServerEventMatchOver,
			Payload: MatchOverPayload{GameID: view.Game.ID, Results: view.State.Results},
		})
	}
}

// RefreshStats tells every client to reload aggregate statistics.
func (h *Hub) RefreshStats() {
	h.Broadcast(&ServerEnvelope{Type: ServerTypeEvent, Event: ServerEventStatsRefresh})
}

// ClientCount returns the number of connected clients with role.
func (h *Hub) ClientCount(role string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[role])
}
