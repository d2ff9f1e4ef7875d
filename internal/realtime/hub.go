package realtime

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

// Client-to-server message types.
const (
	MessageTypeJoinCustomerRoom = "join-customer-room"
	MessageTypeJoinAdminRoom    = "join-admin-room"
	MessageTypeJoinUserRoom     = "join-user-room"
	MessageTypePing             = "ping"
	MessageTypePong             = "pong"
)

// Server-to-client event types.
const (
	EventPortfolioCreated = "portfolio-created"
	EventPortfolioUpdated = "portfolio-updated"
	EventPortfolioChanged = "portfolio-changed"
	EventPortfolioDeleted = "portfolio-deleted"
	EventAvatarUploaded   = "avatar-uploaded"
)

// Message is the wire format in both directions: a type tag plus an opaque
// payload.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// envelope is a message routed to one room, or to everyone when room is
// empty.
type envelope struct {
	room string
	msg  Message
}

// Config names the broad-audience rooms' owner identities so that joining
// the customer or admin audience also joins the matching per-identity rooms.
type Config struct {
	AdminOwner     string
	CustomerOwners []string
}

// Hub maintains the set of live clients and their room memberships and fans
// typed change notifications out to them. Delivery is fire-and-forget: a
// client whose send buffer is full is dropped, and nothing is replayed for
// clients that were offline at emission time.
type Hub struct {
	cfg    Config
	logger logger.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	broadcast  chan envelope
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
}

func NewHub(cfg Config, log logger.Logger) *Hub {
	return &Hub{
		cfg:        cfg,
		logger:     log,
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan envelope, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes client lifecycle events and broadcasts until the context is
// canceled, at which point all clients are closed and ctx.Err() is returned.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAllClients()
			return ctx.Err()

		case client := <-h.Register:
			h.addClient(client)

		case client := <-h.Unregister:
			h.removeClient(client)

		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("websocket client connected", zap.Uint64("client_id", c.id), zap.Int("total_clients", total))
}

// removeClient drops the client from every room it joined; disconnect
// releases all memberships implicitly.
func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("websocket client disconnected", zap.Uint64("client_id", c.id), zap.Int("total_clients", total))
}

// Join subscribes the client to a named room. Membership is not authorized
// here: any connected client may join any room it asks for.
func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	h.mu.Unlock()
	h.logger.Debug("client joined room", zap.Uint64("client_id", c.id), zap.String("room", room))
}

// JoinCustomerAudience joins the broad customer room plus each configured
// customer identity's own room.
func (h *Hub) JoinCustomerAudience(c *Client) {
	h.Join(c, "customer-updates")
	for _, owner := range h.cfg.CustomerOwners {
		h.Join(c, owner+"-updates")
	}
}

// JoinAdminAudience joins the broad admin room plus the admin identity's own
// room.
func (h *Hub) JoinAdminAudience(c *Client) {
	h.Join(c, "admin-updates")
	if h.cfg.AdminOwner != "" {
		h.Join(c, h.cfg.AdminOwner+"-updates")
	}
}

// BroadcastAll emits an event to every connected client.
func (h *Hub) BroadcastAll(event string, payload any) {
	h.enqueue(envelope{msg: Message{Type: event, Data: payload}})
}

// BroadcastRoom emits an event only to the members of the named room.
func (h *Hub) BroadcastRoom(room string, event string, payload any) {
	h.enqueue(envelope{room: room, msg: Message{Type: event, Data: payload}})
}

func (h *Hub) enqueue(env envelope) {
	select {
	case h.broadcast <- env:
	default:
		h.logger.Warn("broadcast channel full, dropping event",
			zap.String("event", env.msg.Type), zap.String("room", env.room))
	}
}

// sendTo queues a message on one client's channel. Send channels are closed
// only under mu, so the membership check under the read lock keeps the send
// safe against a concurrent slow-client drop or shutdown.
func (h *Hub) sendTo(c *Client, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[c] {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *Hub) deliver(env envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var targets map[*Client]bool
	if env.room == "" {
		targets = h.clients
	} else {
		targets = h.rooms[env.room]
	}

	var toRemove []*Client
	for client := range targets {
		select {
		case client.send <- env.msg:
		default:
			// Send buffer full: the client is too slow, drop it.
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			close(client.send)
		}
		for room, members := range h.rooms {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	count := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.rooms = make(map[string]map[*Client]bool)
	h.mu.Unlock()
	h.logger.Info("websocket hub stopped", zap.Int("clients_closed", count))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the number of members in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
