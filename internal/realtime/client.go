package realtime

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var clientIDCounter atomic.Uint64

// Client sits between one websocket connection and the hub.
type Client struct {
	id     uint64
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	logger logger.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, log logger.Logger) *Client {
	return &Client{
		id:     clientIDCounter.Add(1),
		hub:    hub,
		conn:   conn,
		send:   make(chan Message, 256),
		logger: log,
	}
}

// Start begins the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump consumes room-join requests and pings from the connection until
// it drops, then unregisters the client.
func (c *Client) readPump() {
	defer func() {
		c.detach()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("unexpected websocket close", zap.Uint64("client_id", c.id), zap.Error(err))
			}
			break
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case MessageTypeJoinCustomerRoom:
		c.hub.JoinCustomerAudience(c)
	case MessageTypeJoinAdminRoom:
		c.hub.JoinAdminAudience(c)
	case MessageTypeJoinUserRoom:
		ownerID, ok := msg.Data.(string)
		if !ok || ownerID == "" {
			c.logger.Warn("join-user-room without owner id", zap.Uint64("client_id", c.id))
			return
		}
		c.hub.Join(c, ownerID+"-updates")
	case MessageTypePing:
		c.hub.sendTo(c, Message{Type: MessageTypePong})
	}
}

// detach unregisters the client, or gives up once the hub has stopped.
func (c *Client) detach() {
	select {
	case c.hub.Unregister <- c:
	case <-c.hub.done:
	}
}

// writePump flushes hub messages to the connection and keeps it alive with
// periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
