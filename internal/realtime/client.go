package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"nextcareer-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket timeout constants following Gorilla best practices
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// sendBufferSize bounds how many undelivered events a slow client may queue.
const sendBufferSize = 16

// registerMessage is the single inbound message type clients send.
type registerMessage struct {
	Event  string `json:"event"`
	UserID string `json:"userId"`
}

// Client represents one WebSocket connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan Event
	done      chan struct{}
	userID    string
	closeOnce sync.Once
}

// close signals the write pump to send a close frame and tear the
// connection down. The send channel itself is never closed, so a
// concurrent Push can never hit a closed channel.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// readPump consumes inbound messages until the connection drops, then
// unregisters the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Debug("Websocket closed unexpectedly", "error", err)
			}
			return
		}

		var msg registerMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Log.Warn("Ignoring malformed realtime message", "error", err)
			continue
		}

		if msg.Event == "register" && msg.UserID != "" {
			c.hub.Register(msg.UserID, c)
		}
	}
}

// writePump drains the send channel onto the connection and keeps the
// peer alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and starts
// the client pumps. Clients announce themselves with a register message;
// until then the connection receives broadcasts only after registration.
func ServeWS(hub *Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Log.Error("Websocket upgrade failed", "error", err)
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan Event, sendBufferSize),
			done: make(chan struct{}),
		}

		go client.writePump()
		go client.readPump()
	}
}
