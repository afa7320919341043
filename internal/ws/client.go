package ws

import (
	"log/slog"
	"sync"
	"time"

	"prime31/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
)

// Client is one player's connection. The read pump owns the protocol state
// (username) and the write pump must not read it; the write pump is the
// only writer to Conn.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub

	// set by the read pump once authenticated
	username string
	// username from a verified token, admitted before the first read
	preauth string

	done      chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

func NewClient(conn *websocket.Conn, hub *Hub, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	id := uuid.NewString()
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
		Hub:  hub,
		done: make(chan struct{}),
		log:  logger.With("conn", id),
	}
}

// WithToken marks the client as already authenticated as username.
func (c *Client) WithToken(username string) *Client {
	c.preauth = username
	return c
}

// Run serves the connection until it closes.
func (c *Client) Run() {
	connectionsActive.Inc()
	connectionsTotal.Inc()
	defer connectionsActive.Dec()

	go c.writePump()

	if c.preauth != "" {
		c.Hub.admit(c, c.preauth)
	}

	c.readPump()
}

// Username returns the authenticated username or "".
func (c *Client) Username() string {
	return c.username
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Disconnect(c)
		c.close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read error", "user", c.username, "error", err)
			}
			return
		}
		c.Hub.HandleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Debug("write error", "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}

		case <-c.done:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// enqueue queues one frame without blocking. It reports false when the
// queue is full or the client is gone.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
