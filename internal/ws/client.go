package ws

import (
	"sync"
	"time"

	"mancala_arena/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one websocket participant. PlayerID is set when the connection
// presented a valid guest token; move payloads may still carry their own
// player id (the original clients do), so it is a fallback, not a gate.
type Client struct {
	PlayerID string

	conn    *websocket.Conn
	send    chan []byte
	hub     *Hub
	gateway *Gateway

	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, hub *Hub, gateway *Gateway, playerID string) *Client {
	return &Client{
		PlayerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		hub:      hub,
		gateway:  gateway,
	}
}

// Run pumps the connection until it drops.
func (c *Client) Run() {
	wsConnections.Inc()
	defer wsConnections.Dec()

	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.RemoveClient(c)
		c.closeSend()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "error", err)
			}
			return
		}
		c.gateway.HandleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue hands a frame to the writer without blocking the caller; a client
// that cannot drain its buffer loses the frame rather than stalling the
// whole room.
func (c *Client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		droppedFrames.Inc()
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
