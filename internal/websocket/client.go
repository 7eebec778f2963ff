package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Client messages are single darts; anything large is abuse.
	maxMessageSize = 4 * 1024
)

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound envelopes; closed by the hub.
	send chan *ServerEnvelope

	// Role is RoleScoreboard or RoleInput.
	Role string

	// RateLimitKey is the client IP at connection time.
	RateLimitKey string

	ctx context.Context
}

func newClient(hub *Hub, conn *websocket.Conn, role, key string) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan *ServerEnvelope, 64),
		Role:         role,
		RateLimitKey: key,
		// Not the request context: it is canceled once the upgrade handler returns.
		ctx: context.Background(),
	}
}

// readPump dispatches client messages until the connection fails.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error role=%s remote=%s: %v", c.Role, c.RateLimitKey, err)
			}
			return
		}
		var msg ClientInMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.SendTo(c, errorEnvelope("", "invalid message"))
			continue
		}
		if h := c.hub.messageHandler(); h != nil {
			h.HandleMessage(c.ctx, c, &msg)
		}
	}
}

// writePump writes hub envelopes and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One frame per envelope so clients can parse each message alone.
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
