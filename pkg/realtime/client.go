package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// sendQueueSize bounds the per-client queue; a client that falls this
	// far behind is disconnected instead of backpressuring the hub.
	sendQueueSize = 32
)

// Client is one WebSocket connection. The hub goroutine owns the rooms map;
// the client's own pumps only touch conn and send.
type Client struct {
	id    string
	hub   *Hub
	conn  *websocket.Conn
	send  chan Event
	rooms map[string]bool
}

func newClient(h *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:    uuid.NewString(),
		hub:   h,
		conn:  conn,
		send:  make(chan Event, sendQueueSize),
		rooms: make(map[string]bool),
	}
}

// enqueue queues an event for delivery. Returns false when the queue is full,
// signalling the hub to drop this client.
func (c *Client) enqueue(e Event) bool {
	select {
	case c.send <- e:
		return true
	default:
		return false
	}
}

// readPump decodes inbound commands and forwards them to the hub loop.
// Runs until the connection errors or closes, then unregisters the client.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			continue // malformed frames are ignored, not fatal
		}
		select {
		case c.hub.commands <- clientCommand{client: c, cmd: cmd}:
		case <-c.hub.done:
			return
		}
	}
}

// writePump serializes queued events onto the connection and keeps the
// connection alive with pings. Exits when the hub closes the send queue.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case e, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(e); err != nil {
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

func now() time.Time { return time.Now().UTC() }
